package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores API responses as JSON files keyed by request URL.
// Every entry carries its own expiry so the station list can live for a
// day while search results expire after minutes.
type FileCache struct {
	dir string
	now func() time.Time
}

type cacheEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewFileCache creates the cache directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	return &FileCache{
		dir: dir,
		now: time.Now,
	}, nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/mvg, falling back to ~/.cache/mvg.
func DefaultCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "mvg")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "mvg-cache")
	}

	return filepath.Join(home, ".cache", "mvg")
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string {
	return c.dir
}

func (c *FileCache) keyToFilename(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".json")
}

func (c *FileCache) read(filename string) (cacheEntry, bool) {
	// #nosec G304 -- filename is derived from the cache dir and a key hash
	data, err := os.ReadFile(filename)
	if err != nil {
		return cacheEntry{}, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(filename)
		return cacheEntry{}, false
	}
	return entry, true
}

// Get returns the cached value for key if it exists and has not expired.
func (c *FileCache) Get(key string) ([]byte, bool) {
	filename := c.keyToFilename(key)
	entry, ok := c.read(filename)
	if !ok {
		return nil, false
	}

	if entry.Key != key || !c.now().Before(entry.ExpiresAt) {
		_ = os.Remove(filename)
		return nil, false
	}

	return entry.Data, true
}

// SetWithTTL stores value under key for ttl. The file is written to a
// temporary name first so concurrent readers never see a partial entry.
func (c *FileCache) SetWithTTL(key string, value []byte, ttl time.Duration) error {
	now := c.now()
	entry := cacheEntry{
		Key:       key,
		Data:      value,
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write cache entry: %w", err)
	}
	return os.Rename(tmp.Name(), c.keyToFilename(key))
}

// Clear removes all cache entries. Backs "mvg cache clear".
func (c *FileCache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			_ = os.Remove(filepath.Join(c.dir, entry.Name()))
		}
	}

	return nil
}

// Cleanup removes expired and unreadable entries and returns how many
// files it deleted. The API client runs it when it opens the cache.
func (c *FileCache) Cleanup() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, err
	}

	removed := 0
	now := c.now()
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		filename := filepath.Join(c.dir, entry.Name())
		ce, ok := c.read(filename)
		if !ok {
			removed++
			continue
		}
		if !now.Before(ce.ExpiresAt) {
			if os.Remove(filename) == nil {
				removed++
			}
		}
	}

	return removed, nil
}
