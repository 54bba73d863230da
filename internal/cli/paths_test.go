package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"default under home", "", filepath.Join(home, ".cache", appName)},
		{"XDG_CACHE_HOME wins", "/tmp/custom-cache", filepath.Join("/tmp/custom-cache", appName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			dir, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if dir != tt.want {
				t.Errorf("cacheDir() = %q, want %q", dir, tt.want)
			}
		})
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(noCache) error: %v", err)
	}
	if _, ok := c.(interface{ Dir() string }); ok {
		t.Error("newCache(true) should not return a file cache")
	}

	c, err = newCache(false)
	if err != nil {
		t.Fatalf("newCache() error: %v", err)
	}
	fc, ok := c.(interface{ Dir() string })
	if !ok {
		t.Fatalf("newCache() = %T, want a file cache", c)
	}
	if filepath.Base(fc.Dir()) != appName {
		t.Errorf("cache dir = %q, want it under %s", fc.Dir(), appName)
	}
}

func TestLoadStyles(t *testing.T) {
	s, err := loadStyles("")
	if err != nil {
		t.Fatalf("loadStyles(\"\") error: %v", err)
	}
	if s.Violin.Seed != 42 {
		t.Errorf("default violin seed = %d, want 42", s.Violin.Seed)
	}

	if _, err := loadStyles(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("loadStyles(missing) should fail")
	}
}
