package introspect

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/gelx/compiler/catalog"
	"github.com/syssam/gelx/compiler/descriptor"
)

// Cache stores compiled signatures by key.
type Cache interface {
	Get(key string) (*CompiledQuery, bool, error)
	Put(key string, q CompiledQuery) error
}

// CacheKey returns the cache key of a query text.
func CacheKey(query string) string {
	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:])
}

// FileCache is a Cache storing one msgpack file per key in a directory.
type FileCache struct {
	dir string
}

// NewFileCache returns a cache rooted at dir. The directory is created on
// the first Put.
func NewFileCache(dir string) *FileCache {
	return &FileCache{dir: dir}
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, key+".msgpack")
}

// Get returns the entry for key. A missing entry is not an error.
func (c *FileCache) Get(key string) (*CompiledQuery, bool, error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var q CompiledQuery
	if err := msgpack.Unmarshal(data, &q); err != nil {
		return nil, false, fmt.Errorf("cache entry %s: %w", key, err)
	}
	return &q, true, nil
}

// Put stores q under key.
func (c *FileCache) Put(key string, q CompiledQuery) error {
	data, err := msgpack.Marshal(q)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path(key), data, 0o644)
}

// CachedService answers Compile from a Cache before asking the wrapped
// service. Catalog and globals always come from the wrapped service.
type CachedService struct {
	next  Service
	cache Cache
}

// NewCachedService wraps next with cache.
func NewCachedService(next Service, cache Cache) *CachedService {
	return &CachedService{next: next, cache: cache}
}

func (s *CachedService) FetchCatalog(ctx context.Context) ([]catalog.TypeRow, error) {
	return s.next.FetchCatalog(ctx)
}

func (s *CachedService) FetchGlobals(ctx context.Context) ([]catalog.GlobalRow, error) {
	return s.next.FetchGlobals(ctx)
}

func (s *CachedService) Compile(ctx context.Context, query string) (*descriptor.CommandDescription, error) {
	key := CacheKey(query)
	q, ok, err := s.cache.Get(key)
	if err != nil {
		return nil, err
	}
	if ok {
		return q.Description()
	}
	d, err := s.next.Compile(ctx, query)
	if err != nil {
		return nil, err
	}
	entry, err := NewCompiledQuery(query, d)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(key, entry); err != nil {
		return nil, err
	}
	return d, nil
}
