// Package observability lets the application watch pipeline and cache
// activity.
//
// The pipeline and cache report events through the registered hooks; the
// CLI routes them to its logger. Nothing here depends on a backend, and
// the defaults do nothing.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnImportStart(ctx, source)
//	// ... import ...
//	observability.Pipeline().OnImportComplete(ctx, source, nodes, links, duration, err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the import, layout, export and render
// stages.
type PipelineHooks interface {
	// Import events. source names the document (a path or "-").
	OnImportStart(ctx context.Context, source string)
	OnImportComplete(ctx context.Context, source string, nodeCount, linkCount int, duration time.Duration, err error)

	// Layout events. placed is the number of nodes given a grid position.
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, placed int, duration time.Duration, err error)

	// Export events. skipped counts unlabeled nodes left out.
	OnExportStart(ctx context.Context, nodeCount int)
	OnExportComplete(ctx context.Context, podCount, skipped int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnImportStart(context.Context, string) {}
func (NoopPipelineHooks) OnImportComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnExportStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnExportComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// hookSet is swapped as a whole so readers never see a half-updated pair.
type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
}

var (
	current atomic.Pointer[hookSet]
	setMu   sync.Mutex
)

func init() {
	Reset()
}

func load() *hookSet {
	return current.Load()
}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	setMu.Lock()
	defer setMu.Unlock()
	next := *load()
	next.pipeline = h
	current.Store(&next)
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	setMu.Lock()
	defer setMu.Unlock()
	next := *load()
	next.cache = h
	current.Store(&next)
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	return load().pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	return load().cache
}

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	setMu.Lock()
	defer setMu.Unlock()
	current.Store(&hookSet{pipeline: NoopPipelineHooks{}, cache: NoopCacheHooks{}})
}
