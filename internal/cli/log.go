// Package cli implements the genoviz command-line interface.
//
// This package provides commands for rendering genomics charts from feature,
// count and cell tables, inspecting them interactively in the terminal,
// serving them over HTTP and managing the artifact cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, HTML, PNG, PDF or JSON for one chart kind
//   - inspect: Browse a chart's elements and replay interactions in a TUI
//   - serve: Run the HTTP and websocket server
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every pipeline stage through an observability hook. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/genoviz/pkg/observability"
)

// newLogger returns a logger that stamps lines with "HH:MM:SS.cc" and
// drops messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch logs how long a command step took. Not safe for concurrent use.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
	fields []any
}

func startStopwatch(l *log.Logger, fields ...any) *stopwatch {
	return &stopwatch{logger: l, start: time.Now(), fields: fields}
}

// elapsed returns the time since start, rounded to the millisecond.
func (s *stopwatch) elapsed() time.Duration {
	return time.Since(s.start).Round(time.Millisecond)
}

// done logs msg at info level with the stopwatch fields, any extra
// key/value pairs and the elapsed time.
func (s *stopwatch) done(msg string, keyvals ...any) {
	kv := append(append(append([]any{}, s.fields...), keyvals...), "elapsed", s.elapsed())
	s.logger.Info(msg, kv...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports pipeline stages to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnDecodeStart(_ context.Context, kind, format string) {
	h.logger.Debug("decoding input", "kind", kind, "format", format)
}

func (h logHooks) OnDecodeComplete(_ context.Context, kind, format string, rows int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("decode failed", "kind", kind, "format", format, "err", err)
		return
	}
	h.logger.Debug("decoded input", "kind", kind, "rows", rows, "duration", d.Round(time.Microsecond))
}

func (h logHooks) OnRenderStart(_ context.Context, kind string, formats []string) {
	h.logger.Debug("rendering", "kind", kind, "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, kind string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "kind", kind, "err", err)
		return
	}
	h.logger.Debug("rendered", "kind", kind, "duration", d.Round(time.Microsecond))
}

var _ observability.PipelineHooks = logHooks{}
