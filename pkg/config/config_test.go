package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/errors"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "style.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadStylesEmptyPath(t *testing.T) {
	s, err := LoadStyles("")
	if err != nil {
		t.Fatal(err)
	}
	if s.Genome != chart.DefaultStyle(chart.KindGenome) {
		t.Errorf("genome = %+v, want defaults", s.Genome)
	}
	if s.Violin.Seed != 42 || s.Scatter.ColorBy != 2 || s.Scatter.StrokeWidth != 4 {
		t.Errorf("extras = %+v %+v", s.Violin, s.Scatter)
	}
}

func TestLoadStylesMergesFile(t *testing.T) {
	path := writeFile(t, `
[genome]
width = 1200

[scatter]
color_by = 3
palette = ["#111111", "#222222"]

[violin]
seed = 7
margin = { bottom = 60 }
`)
	s, err := LoadStyles(path)
	if err != nil {
		t.Fatal(err)
	}
	def := chart.DefaultStyle(chart.KindGenome)
	if s.Genome.Width != 1200 || s.Genome.Height != def.Height {
		t.Errorf("genome = %+v", s.Genome)
	}
	if s.Scatter.ColorBy != 3 || s.Scatter.StrokeWidth != 4 || len(s.Scatter.Palette) != 2 {
		t.Errorf("scatter = %+v", s.Scatter)
	}
	if s.Violin.Seed != 7 || s.Violin.Margin.Bottom != 60 || s.Violin.Margin.Left != 40 {
		t.Errorf("violin = %+v", s.Violin)
	}
}

func TestLoadStylesErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "[genome]\nwidht = 3\n"},
		{"negative width", "[pie]\nwidth = -5\n"},
		{"bad toml", "[genome\n"},
		{"negative stroke", "[scatter]\nstroke_width = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStyles(writeFile(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidStyle) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidStyle)
			}
		})
	}
}

func TestLoadServer(t *testing.T) {
	t.Setenv("GENOVIZ_PORT", "9090")
	t.Setenv("GENOVIZ_CACHE_TTL", "1h")
	t.Setenv("GENOVIZ_ALLOWED_ORIGINS", "example.com, localhost:*")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.CacheTTL != time.Hour || cfg.SessionTTL != 24*time.Hour {
		t.Errorf("ttls = %v, %v", cfg.CacheTTL, cfg.SessionTTL)
	}
	if cfg.MongoDB != "genoviz" || cfg.RedisURL != "" {
		t.Errorf("mongo db %q, redis %q", cfg.MongoDB, cfg.RedisURL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "localhost:*" {
		t.Errorf("AllowedOrigins = %q", cfg.AllowedOrigins)
	}
}

func TestLoadServerBadPort(t *testing.T) {
	t.Setenv("GENOVIZ_PORT", "eighty")
	if _, err := LoadServer(); err == nil {
		t.Error("expected error for non-numeric port")
	}
}
