package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps one JSON file per session in a directory.
type FileStore struct {
	mu  sync.RWMutex
	dir string
	now func() time.Time
}

// NewFileStore creates a store in dir. An empty dir uses
// ~/.config/genoviz/sessions.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "genoviz", "sessions")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

// Path returns the session directory.
func (f *FileStore) Path() string { return f.dir }

func (f *FileStore) path(id string) string {
	return filepath.Join(f.dir, id+".json")
}

func (f *FileStore) Get(_ context.Context, id string) (*Session, error) {
	if !ValidID(id) {
		return nil, ErrNotFound
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path(id))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", id, err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", id, err)
	}
	if s.IsExpired(f.now()) {
		os.Remove(f.path(id))
		return nil, ErrExpired
	}
	return &s, nil
}

func (f *FileStore) Set(_ context.Context, s *Session) error {
	if !ValidID(s.ID) {
		return fmt.Errorf("invalid session id %q", s.ID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(f.path(s.ID), data, 0o600); err != nil {
		return fmt.Errorf("write session %s: %w", s.ID, err)
	}
	return nil
}

func (f *FileStore) Delete(_ context.Context, id string) error {
	if !ValidID(id) {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session %s: %w", id, err)
	}
	return nil
}

func (f *FileStore) Cleanup(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return fmt.Errorf("read session dir: %w", err)
	}
	now := f.now()
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(f.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var s Session
		if err := json.Unmarshal(data, &s); err != nil {
			continue
		}
		if s.IsExpired(now) {
			os.Remove(path)
		}
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
