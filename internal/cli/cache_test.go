package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/genoviz/pkg/cache"
)

func TestFormatBytes(t *testing.T) {
	p := message.NewPrinter(language.English)
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1,023 B"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatBytes(p, tt.n); got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestCacheClearCommand(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	fc, err := cache.NewFileCache(filepath.Join(xdg, appName))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"pie.svg", "tsne.json"} {
		if err := fc.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	run := func(args ...string) {
		t.Helper()
		root := New(&bytes.Buffer{}, LogInfo).RootCommand()
		root.SetOut(&bytes.Buffer{})
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			t.Fatalf("%s: %v", strings.Join(args, " "), err)
		}
	}

	run("cache", "info")
	run("cache", "clear", "--expired")
	if u, _ := fc.Usage(); u.Entries != 2 {
		t.Errorf("--expired removed live entries: %+v", u)
	}
	run("cache", "clear")
	if u, _ := fc.Usage(); u.Entries != 0 {
		t.Errorf("clear left %d entries", u.Entries)
	}
}

func TestCacheCommandsOnEmptyCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", filepath.Join(t.TempDir(), "missing"))
	for _, sub := range []string{"info", "clear"} {
		root := New(&bytes.Buffer{}, LogInfo).RootCommand()
		root.SetArgs([]string{"cache", sub})
		if err := root.Execute(); err != nil {
			t.Errorf("cache %s on a missing directory: %v", sub, err)
		}
	}
}
