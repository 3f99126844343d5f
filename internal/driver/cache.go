package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// cachedResult is the on-disk representation of a Result, keyed by the
// content hash of the AST document that produced it. Only each
// diagnostic's code, position and message are stored; hints and notes are
// not, and a loaded diagnostic always has error severity.
type cachedResult struct {
	BorrowViolations int              `msgpack:"borrow_violations"`
	MoveViolations   int              `msgpack:"move_violations"`
	Diagnostics      []cachedDiagnostic `msgpack:"diagnostics"`
}

type cachedDiagnostic struct {
	Code    uint16 `msgpack:"code"`
	Line    uint32 `msgpack:"line"`
	Col     uint32 `msgpack:"col"`
	Message string `msgpack:"message"`
}

// Cache stores analysis results on disk, keyed by the sha256 content hash
// of the raw document bytes. A hit avoids re-running both analyzers over
// an unchanged file.
type Cache struct {
	dir string
}

// NewCache creates a Cache rooted at dir, creating it if necessary.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &Cache{dir: dir}, nil
}

// Key returns the cache key for raw document bytes.
func Key(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".msgpack")
}

// Load returns the cached Result for key, or ok=false on a miss.
func (c *Cache) Load(key string) (*Result, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	var cached cachedResult
	if err := msgpack.Unmarshal(data, &cached); err != nil {
		return nil, false
	}
	result := &Result{
		BorrowViolations: cached.BorrowViolations,
		MoveViolations:   cached.MoveViolations,
	}
	for _, d := range cached.Diagnostics {
		result.Diagnostics = append(result.Diagnostics, fromCached(d))
	}
	return result, true
}

// Store persists result under key.
func (c *Cache) Store(key string, result *Result) error {
	cached := cachedResult{
		BorrowViolations: result.BorrowViolations,
		MoveViolations:   result.MoveViolations,
	}
	for _, d := range result.Diagnostics {
		cached.Diagnostics = append(cached.Diagnostics, toCached(d))
	}
	data, err := msgpack.Marshal(&cached)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := os.WriteFile(c.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}
