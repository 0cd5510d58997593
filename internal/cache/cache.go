// Package cache implements a rendered-output cache for netsketch. Rendering a
// diagram is deterministic, so the SVG for a given document content can be
// stored once and replayed for repeated renders and preview requests.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Cache stores rendered artifacts keyed by content hash.
type Cache struct {
	mu      sync.RWMutex
	dir     string
	index   *Index
	maxSize int64
	stats   Stats
}

// Index tracks all cached entries
type Index struct {
	Version string            `json:"version"`
	Entries map[string]*Entry `json:"entries"`
	Updated time.Time         `json:"updated"`
}

// Entry represents a single cached render
type Entry struct {
	Key        string    `json:"key"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Created    time.Time `json:"created"`
	LastAccess time.Time `json:"last_access"`
}

// Stats tracks cache performance metrics. All counters are guarded by the
// cache mutex; GetStats returns a consistent snapshot.
type Stats struct {
	Hits       int64 `json:"hits"`
	Misses     int64 `json:"misses"`
	Evictions  int64 `json:"evictions"`
	TotalSize  int64 `json:"total_size"`
	EntryCount int   `json:"entry_count"`
}

// Config holds cache configuration
type Config struct {
	Dir     string // Cache directory (default: $HOME/.cache/netsketch)
	MaxSize int64  // Maximum cache size in bytes (default: 64 MB)
}

// DefaultConfig returns the default cache configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		Dir:     filepath.Join(homeDir, ".cache", "netsketch"),
		MaxSize: 64 << 20,
	}
}

// New creates a new cache instance
func New(config Config) (*Cache, error) {
	if config.Dir == "" {
		config = DefaultConfig()
	}
	if config.MaxSize <= 0 {
		config.MaxSize = DefaultConfig().MaxSize
	}

	if err := os.MkdirAll(config.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		dir:     config.Dir,
		maxSize: config.MaxSize,
		index: &Index{
			Version: "1.0",
			Entries: make(map[string]*Entry),
			Updated: time.Now(),
		},
	}

	// Load existing index; a missing or corrupted index means a fresh start.
	if err := cache.loadIndex(); err != nil {
		cache.index = &Index{
			Version: "1.0",
			Entries: make(map[string]*Entry),
			Updated: time.Now(),
		}
	}

	return cache, nil
}

// Key derives the cache key for a piece of source content. Anything that
// affects the render (document bytes, option fingerprint) belongs in parts.
func Key(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached render by key.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.index.Entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}

	data, err := os.ReadFile(entry.Path)
	if err != nil {
		// Entry file vanished out from under the index; drop it.
		delete(c.index.Entries, key)
		c.stats.Misses++
		return nil, false
	}

	entry.LastAccess = time.Now()
	c.stats.Hits++
	return data, true
}

// Put stores a rendered artifact under key.
func (c *Cache) Put(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := filepath.Join(c.dir, key+".svg")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	now := time.Now()
	c.index.Entries[key] = &Entry{
		Key:        key,
		Path:       path,
		Size:       int64(len(data)),
		Created:    now,
		LastAccess: now,
	}
	c.index.Updated = now

	c.evictIfNeeded()

	return c.saveIndex()
}

// GetStats returns a snapshot of the cache statistics.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := int64(0)
	for _, e := range c.index.Entries {
		total += e.Size
	}
	snapshot := c.stats
	snapshot.TotalSize = total
	snapshot.EntryCount = len(c.index.Entries)
	return snapshot
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.index.Entries {
		os.Remove(entry.Path)
		delete(c.index.Entries, key)
	}
	c.index.Updated = time.Now()
	return c.saveIndex()
}

// evictIfNeeded removes least recently used entries until the cache fits the
// size budget. Called with the lock held.
func (c *Cache) evictIfNeeded() {
	total := int64(0)
	for _, e := range c.index.Entries {
		total += e.Size
	}
	if total <= c.maxSize {
		return
	}

	entries := make([]*Entry, 0, len(c.index.Entries))
	for _, e := range c.index.Entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastAccess.Before(entries[j].LastAccess)
	})

	for _, e := range entries {
		if total <= c.maxSize {
			break
		}
		os.Remove(e.Path)
		delete(c.index.Entries, e.Key)
		total -= e.Size
		c.stats.Evictions++
	}
}

func (c *Cache) indexPath() string {
	return filepath.Join(c.dir, "index.json")
}

func (c *Cache) loadIndex() error {
	data, err := os.ReadFile(c.indexPath())
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c.index)
}

func (c *Cache) saveIndex() error {
	data, err := json.MarshalIndent(c.index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache index: %w", err)
	}
	return os.WriteFile(c.indexPath(), data, 0644)
}
