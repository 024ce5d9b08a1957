package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileSet owns every file of one compilation and resolves spans against them.
// Adding the same path again yields a new ID; GetLatest returns the newest.
type FileSet struct {
	files   []File
	latest  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{latest: make(map[string]FileID)}
}

// SetBaseDir задаёт каталог, от которого считаются относительные пути.
func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir returns the configured base dir or, if none, the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func (fs *FileSet) Len() int { return len(fs.files) }

// Add registers content as is under path.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: too many files: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("source: %s is too large: %w", path, err))
	}
	id := FileID(n)
	clean := filepath.ToSlash(filepath.Clean(path))
	f := File{
		ID:      id,
		Path:    clean,
		Content: content,
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
	for i, b := range content {
		if b == '\n' {
			f.LineIdx = append(f.LineIdx, uint32(i)) // #nosec G115 -- размер проверен выше
		}
	}
	fs.files = append(fs.files, f)
	fs.latest[clean] = id
	return id
}

// AddNormalized drops a leading UTF-8 BOM and turns CRLF into LF before
// adding. Lone CR bytes are kept.
func (fs *FileSet) AddNormalized(path string, content []byte) FileID {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags)
}

// Load reads path from disk and adds it normalised.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- путь задаёт пользователь
	if err != nil {
		return 0, err
	}
	return fs.AddNormalized(path, content), nil
}

// AddVirtual adds in-memory content flagged FileVirtual.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns nil for IDs this set never issued.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[filepath.ToSlash(filepath.Clean(path))]
	return id, ok
}

// Resolve converts both ends of span to line/column. Unknown files map to 1:1.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{1, 1}, LineCol{1, 1}
	}
	return f.position(span.Start), f.position(span.End)
}
