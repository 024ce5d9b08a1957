package source

import (
	"os"
	"path/filepath"
	"sort"
)

type (
	// FileID indexes a File inside its FileSet.
	FileID uint32
	// FileFlags records how the content was obtained.
	FileFlags uint8
)

const (
	FileVirtual FileFlags = 1 << iota // из памяти: тесты, сгенерированный текст
	FileHadBOM
	FileNormalizedCRLF
)

// File is one Jlite compilation unit after normalisation.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // смещения всех '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}

// position maps a byte offset to a LineCol; offsets past the end stay on the
// last line.
func (f *File) position(off uint32) LineCol {
	// сколько переводов строки стоит строго до off
	n := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	if n == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	lineStart := f.LineIdx[n-1] + 1
	return LineCol{Line: uint32(n) + 1, Col: off - lineStart + 1} // #nosec G115 -- n <= len(LineIdx), bounded by Add
}

// GetLine returns the text of 1-based line n without its newline, or "" if
// there is no such line.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start >= len(f.Content) {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for output. Modes: "absolute", "relative"
// (to baseDir, or the working directory when empty), "basename", "auto".
// Anything else returns the stored path.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			return f.Path
		}
		return filepath.ToSlash(abs)
	case "relative":
		if f.Flags&FileVirtual != 0 && !filepath.IsAbs(f.Path) {
			return f.Path
		}
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		rel, err := filepath.Rel(baseDir, f.Path)
		if err != nil {
			return f.Path
		}
		return filepath.ToSlash(rel)
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
