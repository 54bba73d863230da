package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters is a hook set that counts events. The server registers one and
// reports it on /healthz; tests use it to assert what happened.
type Counters struct {
	Renders      atomic.Int64
	RenderErrors atomic.Int64
	CacheHits    atomic.Int64
	CacheMisses  atomic.Int64
	Events       atomic.Int64
	EventErrors  atomic.Int64
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Renders      int64 `json:"renders"`
	RenderErrors int64 `json:"render_errors"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	Events       int64 `json:"events"`
	EventErrors  int64 `json:"event_errors"`
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Renders:      c.Renders.Load(),
		RenderErrors: c.RenderErrors.Load(),
		CacheHits:    c.CacheHits.Load(),
		CacheMisses:  c.CacheMisses.Load(),
		Events:       c.Events.Load(),
		EventErrors:  c.EventErrors.Load(),
	}
}

func (c *Counters) OnDecodeStart(context.Context, string, string) {}
func (c *Counters) OnDecodeComplete(context.Context, string, string, int, time.Duration, error) {
}
func (c *Counters) OnRenderStart(context.Context, string, []string) {}

func (c *Counters) OnRenderComplete(_ context.Context, _ string, _ []string, _ time.Duration, err error) {
	c.Renders.Add(1)
	if err != nil {
		c.RenderErrors.Add(1)
	}
}

func (c *Counters) OnCacheHit(context.Context, string)      { c.CacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string)     { c.CacheMisses.Add(1) }
func (c *Counters) OnCacheSet(context.Context, string, int) {}

func (c *Counters) OnEvent(_ context.Context, _, _ string, _ int, _ time.Duration, err error) {
	c.Events.Add(1)
	if err != nil {
		c.EventErrors.Add(1)
	}
}

var (
	_ PipelineHooks    = (*Counters)(nil)
	_ CacheHooks       = (*Counters)(nil)
	_ InteractionHooks = (*Counters)(nil)
)
