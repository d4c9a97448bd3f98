package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"crypt/internal/diag"
	"crypt/internal/source"
	"crypt/internal/variant"
)

// CacheSchemaVersion is bumped whenever CacheEntry changes shape.
const CacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// CacheKey mixes the content hash with every option that can change the
// parse result.
func CacheKey(content [32]byte, opts ParseOptions) Digest {
	h := sha256.New()
	h.Write(content[:])
	fmt.Fprintf(h, "|schema=%d|lenient=%t|depth=%d|tokens=%d",
		CacheSchemaVersion, opts.Lenient, opts.MaxDepth, opts.MaxTokens)
	var d Digest
	h.Sum(d[:0])
	return d
}

// CacheEntry is what the cache stores per document: the parsed tree and
// the warnings produced while parsing it, so a cache hit reports the same
// findings as a fresh parse.
type CacheEntry struct {
	Schema uint16             `msgpack:"schema"`
	Value  variant.Value      `msgpack:"value"`
	Diags  []CachedDiagnostic `msgpack:"diags,omitempty"`
}

// CachedDiagnostic is a diagnostic without notes and with a file-relative span.
type CachedDiagnostic struct {
	Severity diag.Severity `msgpack:"sev"`
	Code     diag.Code     `msgpack:"code"`
	Message  string        `msgpack:"msg"`
	Start    uint32        `msgpack:"start"`
	End      uint32        `msgpack:"end"`
}

func newCacheEntry(v variant.Value, bag *diag.Bag) *CacheEntry {
	entry := &CacheEntry{Schema: CacheSchemaVersion, Value: v}
	for _, d := range bag.Items() {
		if d.Severity.AtLeast(diag.SevError) || d.Code == diag.IOCacheError {
			continue
		}
		entry.Diags = append(entry.Diags, CachedDiagnostic{
			Severity: d.Severity,
			Code:     d.Code,
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	return entry
}

func (e *CacheEntry) replay(r diag.Reporter, file source.FileID) {
	for _, d := range e.Diags {
		r.Report(d.Code, d.Severity, source.Span{File: file, Start: d.Start, End: d.End}, d.Message, nil)
	}
}

// ParseCache хранит разобранные документы на диске по хэшу содержимого.
// Thread-safe for concurrent access.
type ParseCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenParseCache opens the cache at the standard location:
// $XDG_CACHE_HOME/<app>, or ~/.cache/<app>.
func OpenParseCache(app string) (*ParseCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewParseCache(filepath.Join(base, app))
}

// NewParseCache opens (creating if needed) a cache rooted at dir.
func NewParseCache(dir string) (*ParseCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ParseCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *ParseCache) Dir() string {
	return c.dir
}

func (c *ParseCache) pathFor(key Digest) string {
	hexKey := key.String()
	// подкаталог по первому байту, чтобы не держать тысячи файлов в одном каталоге
	return filepath.Join(c.dir, "values", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes an entry to the disk cache.
func (c *ParseCache) Put(key Digest, entry *CacheEntry) (err error) {
	if c == nil {
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
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(entry); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads an entry. A missing file or an entry written with another
// schema version is a miss, not an error.
func (c *ParseCache) Get(key Digest) (*CacheEntry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var entry CacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if entry.Schema != CacheSchemaVersion {
		return nil, false, nil
	}
	return &entry, true, nil
}

// DropAll invalidates the cache.
func (c *ParseCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.MkdirAll(c.dir, 0o755)
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
