package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"zenc/internal/diag"
	"zenc/internal/lexer"
	"zenc/internal/parser"
	"zenc/internal/project"
	"zenc/internal/source"
	"zenc/internal/version"
)

// DiskCache хранит результаты разбора файлов на диске, по ключу
// SHA-256(содержимое || версия схемы || режим разбора). Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is what one cache entry stores: enough to replay diagnostics
// without parsing again.
type DiskPayload struct {
	Schema      uint16
	ContentHash project.Digest
	Path        string
	Recover     bool
	MaxErrors   uint
	Items       int
	Diagnostics []CachedDiagnostic
}

// CachedDiagnostic is a diagnostic with file-relative spans.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

// CachedNote is a diagnostic note with file-relative spans.
type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// OpenDiskCache opens (creating if needed) a cache rooted at dir.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDefaultDiskCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenDefaultDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCache(filepath.Join(base, app))
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string { return c.dir }

// KeyFor returns the cache key of a file's current content parsed with opts.
// Fail-fast runs share one key whatever the limit; recover runs are keyed by
// their error limit too, since both change the reported diagnostics.
func KeyFor(file *source.File, opts Options) project.Digest {
	key := project.Combine(project.Digest(file.Hash), version.SchemaVersion)
	rec, maxErrors := cacheMode(opts)
	if !rec {
		return key
	}
	h := sha256.New()
	_, _ = h.Write(key[:])
	var buf [9]byte
	buf[0] = 1
	binary.BigEndian.PutUint64(buf[1:], uint64(maxErrors))
	_, _ = h.Write(buf[:])
	var out project.Digest
	copy(out[:], h.Sum(nil))
	return out
}

func cacheMode(opts Options) (rec bool, maxErrors uint) {
	if !opts.Recover {
		return false, 0
	}
	return true, opts.maxErrors()
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := key.String()
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
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
	return true, nil
}

// Load looks up file and, on a hit with a matching schema, hash and parse
// mode, replays its diagnostics into bag.
func (c *DiskCache) Load(file *source.File, opts Options, bag *diag.Bag) (*DiskPayload, error) {
	var payload DiskPayload
	ok, err := c.Get(KeyFor(file, opts), &payload)
	if err != nil || !ok {
		return nil, err
	}
	rec, maxErrors := cacheMode(opts)
	if payload.Schema != version.SchemaVersion || payload.ContentHash != project.Digest(file.Hash) ||
		payload.Recover != rec || payload.MaxErrors != maxErrors {
		return nil, nil
	}
	for _, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: file.ID, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(source.Span{File: file.ID, Start: n.Start, End: n.End}, n.Msg)
		}
		bag.Add(d)
	}
	return &payload, nil
}

// Store records res for file. Diagnostics that point at other files are skipped.
func (c *DiskCache) Store(file *source.File, opts Options, res *FileResult) error {
	rec, maxErrors := cacheMode(opts)
	payload := &DiskPayload{
		Schema:      version.SchemaVersion,
		ContentHash: project.Digest(file.Hash),
		Path:        file.Path,
		Recover:     rec,
		MaxErrors:   maxErrors,
		Items:       res.Items,
	}
	for _, d := range res.Bag.Items() {
		if d.Primary.File != file.ID || d.Code == diag.IOCacheError {
			continue
		}
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return c.Put(KeyFor(file, opts), payload)
}

// Errors rebuilds the ordered error list of a cached parse. Expected and
// found tokens are not stored, so parse errors carry only code, message and span.
func (p *DiskPayload) Errors(fileID source.FileID) []error {
	var out []error
	for _, cd := range p.Diagnostics {
		if diag.Severity(cd.Severity) != diag.SevError {
			continue
		}
		span := source.Span{File: fileID, Start: cd.Start, End: cd.End}
		code := diag.Code(cd.Code)
		if code < diag.SynInfo {
			out = append(out, &lexer.Error{Code: code, Reason: cd.Message, Span: span})
			continue
		}
		out = append(out, &parser.Error{Code: code, Msg: cd.Message, Span: span})
	}
	return out
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}
