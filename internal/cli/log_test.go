package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("cache opened") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("decoding input") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("decoding input") }, true},
		{"warn at error", log.ErrorLevel, func(l *log.Logger) { l.Warn("cache write failed") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStopwatch(t *testing.T) {
	var buf bytes.Buffer
	w := startStopwatch(newLogger(&buf, log.InfoLevel), "kind", "pie")
	time.Sleep(5 * time.Millisecond)
	if w.elapsed() < 5*time.Millisecond {
		t.Errorf("elapsed() = %v, want >= 5ms", w.elapsed())
	}

	w.done("rendered", "rows", 4)
	out := buf.String()
	for _, want := range []string{"rendered", "kind=pie", "rows=4", "elapsed="} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	w.done("rendered again")
	if strings.Contains(buf.String(), "rows=") {
		t.Errorf("extra fields leaked into the next line:\n%s", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("want log.Default() without an attached logger")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Fatal("want the attached logger")
	}
	loggerFromContext(ctx).Info("attached")
	if !strings.Contains(buf.String(), "attached") {
		t.Error("attached logger should write to its writer")
	}
}

func TestLogHooks(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	h := logHooks{logger: newLogger(&buf, log.DebugLevel)}

	h.OnDecodeStart(ctx, "genome", "tsv")
	h.OnDecodeComplete(ctx, "genome", "tsv", 12, time.Millisecond, nil)
	h.OnRenderStart(ctx, "genome", []string{"svg"})
	h.OnRenderComplete(ctx, "genome", []string{"svg"}, time.Millisecond, errors.New("rsvg-convert missing"))

	out := buf.String()
	for _, want := range []string{"decoding input", "decoded input", "rendering", "render failed", "rsvg-convert missing"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	quiet := logHooks{logger: newLogger(&buf, log.InfoLevel)}
	quiet.OnDecodeStart(ctx, "pie", "json")
	if buf.Len() != 0 {
		t.Error("hooks should log at debug level only")
	}
}
