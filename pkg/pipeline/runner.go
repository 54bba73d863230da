package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/genoviz/pkg/cache"
	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/mount"
	"github.com/matzehuels/genoviz/pkg/observability"
)

// Runner executes the pipeline with an artifact cache. It holds no
// per-run state, so one Runner serves concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
	Logger *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer
// uses the default keyer and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, TTL: cache.DefaultTTL, Logger: logger}
}

// Result is the output of one run.
type Result struct {
	Kind      chart.Kind
	InputHash string
	// Artifacts maps format to bytes.
	Artifacts map[string][]byte
	// Chart is nil when every artifact came from the cache.
	Chart     chart.Chart
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats reports what a run did.
type Stats struct {
	Rows       int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo reports whether the run was served from cache.
type CacheInfo struct {
	RenderHit bool
}

// Execute decodes, builds and renders opts, serving every artifact from
// the cache when all requested formats are present.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	res := &Result{
		Kind:      opts.ChartKind(),
		InputHash: cache.Hash(opts.Data),
	}
	if !opts.Refresh {
		if artifacts, ok := r.lookup(ctx, res.InputHash, opts); ok {
			res.Artifacts = artifacts
			res.CacheInfo.RenderHit = true
			logger.Debug("served from cache", "kind", res.Kind, "formats", opts.Formats)
			return res, nil
		}
	}

	m := mount.New("genoviz")
	start := time.Now()
	c, rows, err := Build(ctx, m, opts, Callbacks{})
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", opts.Kind, err)
	}
	res.Chart = c
	res.Stats.Rows = rows
	res.Stats.BuildTime = time.Since(start)
	logger.Info("built chart", "kind", res.Kind, "rows", rows, "duration", res.Stats.BuildTime)

	start = time.Now()
	artifacts, err := Render(ctx, c, m, opts)
	if err != nil {
		return nil, err
	}
	res.Artifacts = artifacts
	res.Stats.RenderTime = time.Since(start)
	logger.Info("rendered outputs", "formats", opts.Formats, "duration", res.Stats.RenderTime)

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(string(res.Kind), res.InputHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, inputHash string, opts Options) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(opts.Kind, inputHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		hooks.OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
