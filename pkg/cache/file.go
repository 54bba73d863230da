package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores each entry as a JSON file holding the data and its
// expiry. Used by the CLI.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates the cache directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

type fileEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get reads an entry. Expired and corrupt entries are removed and reported
// as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e fileEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !e.ExpiresAt.IsZero() && c.now().After(e.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set writes an entry through a temporary file so readers never see a
// partial write. A ttl of zero never expires.
func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := fileEntry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = c.now().Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes an entry. Deleting a missing key is not an error.
func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Usage summarizes what a FileCache holds on disk.
type Usage struct {
	Entries int
	Expired int
	Bytes   int64
}

// Usage walks the cache directory. Corrupt entries count as expired.
func (c *FileCache) Usage() (Usage, error) {
	var u Usage
	err := c.each(func(path string, size int64, expired bool) error {
		u.Entries++
		u.Bytes += size
		if expired {
			u.Expired++
		}
		return nil
	})
	return u, err
}

// Clear removes every entry and returns how many were removed.
func (c *FileCache) Clear() (int, error) {
	return c.remove(func(bool) bool { return true })
}

// Prune removes expired and corrupt entries and returns how many were
// removed.
func (c *FileCache) Prune() (int, error) {
	return c.remove(func(expired bool) bool { return expired })
}

func (c *FileCache) remove(match func(expired bool) bool) (int, error) {
	n := 0
	err := c.each(func(path string, _ int64, expired bool) error {
		if !match(expired) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		n++
		return nil
	})
	return n, err
}

// each calls fn for every entry file with its size and expiry state.
func (c *FileCache) each(fn func(path string, size int64, expired bool) error) error {
	paths, err := filepath.Glob(filepath.Join(c.dir, "*", "*.json"))
	if err != nil {
		return err
	}
	now := c.now()
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}
		var e fileEntry
		expired := json.Unmarshal(raw, &e) != nil || (!e.ExpiresAt.IsZero() && now.After(e.ExpiresAt))
		if err := fn(p, int64(len(raw)), expired); err != nil {
			return err
		}
	}
	return nil
}

func (c *FileCache) Close() error { return nil }

// path shards entries into 256 subdirectories by key hash.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
