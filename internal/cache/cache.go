// Package cache is the content-addressable persistent store for fetched
// resources. Each URL maps to one content file named by the MD5 of the
// URL plus a sniffed extension, plus one entry in a JSON index sidecar.
// The cache survives across runs; caching is pure optimization and every
// failure here is non-fatal to the caller.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/offdeck/offdeck/internal/resource"
)

const indexFile = "cache_index.json"

// entry is the persisted index record for one URL.
type entry struct {
	Kind     resource.Kind `json:"kind"`
	CachedAt time.Time     `json:"cached_at"`
	Path     string        `json:"path"`
}

// Cache owns the cache directory and its index exclusively. Store calls
// from concurrent fetch tasks are serialized by a single-writer mutex so
// index updates are never lost.
type Cache struct {
	dir string

	mu    sync.Mutex
	index map[string]entry
}

// Open creates the cache directory if needed and loads the index. A
// missing or corrupt index degrades to an empty cache.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir %s: %w", dir, err)
	}
	c := &Cache{dir: dir, index: make(map[string]entry)}

	data, err := os.ReadFile(filepath.Join(dir, indexFile))
	if err != nil {
		return c, nil
	}
	if err := json.Unmarshal(data, &c.index); err != nil {
		// Corrupt index: start over rather than fail the run.
		c.index = make(map[string]entry)
	}
	return c, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// ContentPath returns the backing file path for a URL: md5(url) plus the
// sniffed extension, ".cache" when the URL path has none.
func (c *Cache) ContentPath(url string) string {
	sum := md5.Sum([]byte(url))
	ext := resource.SniffExt(url)
	if ext == "" {
		ext = ".cache"
	}
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+ext)
}

// Lookup returns the cached record for url, or false. A stale index
// entry whose content file is gone is treated as a miss and removed.
func (c *Cache) Lookup(url string) (*resource.Record, bool) {
	c.mu.Lock()
	e, ok := c.index[url]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	content, err := os.ReadFile(c.ContentPath(url))
	if err != nil {
		// Self-heal: drop the dangling entry.
		c.mu.Lock()
		delete(c.index, url)
		c.mu.Unlock()
		return nil, false
	}

	return &resource.Record{
		URL:       url,
		Kind:      e.Kind,
		Content:   content,
		FetchedAt: e.CachedAt,
		Origin:    resource.OriginCache,
	}, true
}

// Store writes the record's content file, then atomically updates and
// persists the index. On failure the URL is simply not cached.
func (c *Cache) Store(rec *resource.Record) error {
	path := c.ContentPath(rec.URL)
	if err := os.WriteFile(path, rec.Content, 0o644); err != nil {
		return fmt.Errorf("writing cache content for %s: %w", rec.URL, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.index[rec.URL] = entry{
		Kind:     rec.Kind,
		CachedAt: time.Now(),
		Path:     path,
	}
	if err := c.saveIndexLocked(); err != nil {
		delete(c.index, rec.URL)
		return fmt.Errorf("persisting cache index for %s: %w", rec.URL, err)
	}
	return nil
}

// saveIndexLocked writes the index via a temp file and rename so a crash
// mid-write never leaves a truncated index behind.
func (c *Cache) saveIndexLocked() error {
	data, err := json.MarshalIndent(c.index, "", "  ")
	if err != nil {
		return err
	}
	tmp := filepath.Join(c.dir, indexFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(c.dir, indexFile))
}

// Clear removes all cached content and the index.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("clearing cache %s: %w", c.dir, err)
	}
	c.index = make(map[string]entry)
	return os.MkdirAll(c.dir, 0o755)
}

// Len returns the number of indexed URLs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}
