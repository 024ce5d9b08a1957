package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"jlite/internal/diag"
	"jlite/internal/source"
	"jlite/internal/version"
)

// CacheSchemaVersion растёт при каждом изменении CachedResult.
const CacheSchemaVersion uint16 = 1

// Digest identifies one cached compilation.
type Digest [sha256.Size]byte

// ResultCache хранит результаты компиляции файлов на диске, ключ - хэш
// содержимого, версии и режима вывода. Internal errors are never stored.
// Thread-safe for concurrent access.
type ResultCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiagnostic is a diagnostic with its span reduced to byte offsets.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
}

// CachedResult is the msgpack payload of one cache entry.
type CachedResult struct {
	Schema      uint16
	Path        string
	Failed      bool
	Diagnostics []CachedDiagnostic
	Output      []byte
}

// OpenResultCache opens (creating if needed) a cache in dir. An empty dir
// selects $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func OpenResultCache(dir, app string) (*ResultCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResultCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *ResultCache) Dir() string { return c.dir }

// CacheKey hashes everything a compilation result depends on.
func CacheKey(content []byte, opts *Options) Digest {
	h := sha256.New()
	var hdr [4]byte
	binary.LittleEndian.PutUint16(hdr[:2], CacheSchemaVersion)
	hdr[2] = byte(opts.Emit)
	if opts.Validate {
		hdr[3] = 1
	}
	_, _ = h.Write(hdr[:])
	_, _ = h.Write([]byte(version.String()))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(content)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *ResultCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the cache.
func (c *ResultCache) Put(key Digest, payload *CachedResult) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload. A missing entry or one written with
// another schema reports ok=false.
func (c *ResultCache) Get(key Digest, out *CachedResult) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != CacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// Clear removes every cached entry.
func (c *ResultCache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "results"))
}

func newCachedResult(res *FileResult) *CachedResult {
	out := &CachedResult{
		Schema: CacheSchemaVersion,
		Path:   res.Path,
		Failed: res.Failed(),
		Output: res.Output,
	}
	for _, d := range res.Bag.Items() {
		out.Diagnostics = append(out.Diagnostics, CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	return out
}

// restore fills res from the payload, re-anchoring spans in file.
func (p *CachedResult) restore(res *FileResult, file source.FileID) {
	res.Output = p.Output
	for _, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: file, Start: cd.Start, End: cd.End}, cd.Message)
		res.Bag.Add(d)
		if p.Failed && res.Err == nil && d.Severity == diag.SevError {
			res.Err = &diag.Error{Diag: d}
		}
	}
	if p.Failed && res.Err == nil {
		res.Err = errors.New("cached failure")
	}
}
