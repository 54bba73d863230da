// Package observability lets a binary observe rendering, caching and
// interaction without the libraries importing a metrics backend.
//
// Libraries call the registered hooks; main registers implementations at
// startup. The defaults are no-ops.
//
//	observability.SetPipelineHooks(myHooks{})
//
//	observability.Pipeline().OnRenderStart(ctx, "genome", []string{"svg"})
//	// ... render ...
//	observability.Pipeline().OnRenderComplete(ctx, "genome", []string{"svg"}, d, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the render pipeline.
type PipelineHooks interface {
	OnDecodeStart(ctx context.Context, kind, format string)
	OnDecodeComplete(ctx context.Context, kind, format string, rows int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, kind string, formats []string)
	OnRenderComplete(ctx context.Context, kind string, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from artifact cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// InteractionHooks receives events handled by server-driven chart
// sessions.
type InteractionHooks interface {
	// OnEvent records one interaction event and the number of patches it
	// produced.
	OnEvent(ctx context.Context, kind, event string, patches int, duration time.Duration, err error)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnDecodeStart(context.Context, string, string) {}
func (NoopPipelineHooks) OnDecodeComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, []string) {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {
}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopInteractionHooks struct{}

func (NoopInteractionHooks) OnEvent(context.Context, string, string, int, time.Duration, error) {}

var (
	hooksMu          sync.RWMutex
	pipelineHooks    PipelineHooks    = NoopPipelineHooks{}
	cacheHooks       CacheHooks       = NoopCacheHooks{}
	interactionHooks InteractionHooks = NoopInteractionHooks{}
)

// SetPipelineHooks registers pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetInteractionHooks registers interaction hooks. Nil is ignored.
func SetInteractionHooks(h InteractionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		interactionHooks = h
	}
}

func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

func Interaction() InteractionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return interactionHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	interactionHooks = NoopInteractionHooks{}
}
