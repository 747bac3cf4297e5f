// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional: libraries emit events through the registered
// hooks, and nothing is recorded until main registers an implementation.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - hook interfaces per event category (scripts, cache, server)
//   - no-op default implementations
//   - a global registry set once at startup
//
// Hooks are registered by main rather than imported by the libraries, so
// pkg/script, pkg/cache and pkg/server never depend on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetScriptHooks(&myScriptHooks{})
//	    observability.SetServerHooks(&myServerHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Script().OnScriptStart(ctx, runID, len(ops))
//	// ... apply operations ...
//	observability.Script().OnScriptComplete(ctx, runID, applied, failed, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Script Hooks
// =============================================================================

// ScriptHooks receives events from the operation script runner.
type ScriptHooks interface {
	// OnScriptStart records the start of a run over ops operations.
	OnScriptStart(ctx context.Context, runID string, ops int)

	// OnOp records one applied operation. ok is false when its expectation
	// did not hold.
	OnOp(ctx context.Context, runID, kind string, ok bool, duration time.Duration)

	// OnScriptComplete records the end of a run.
	OnScriptComplete(ctx context.Context, runID string, applied, failed int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP server.
type ServerHooks interface {
	// OnRequest records a served request. route is the matched pattern,
	// not the raw path.
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)

	// OnMutation records a graph change made through the server.
	OnMutation(ctx context.Context, kind string, nodes, edges int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopScriptHooks is a no-op implementation of ScriptHooks.
type NoopScriptHooks struct{}

func (NoopScriptHooks) OnScriptStart(context.Context, string, int)                {}
func (NoopScriptHooks) OnOp(context.Context, string, string, bool, time.Duration) {}
func (NoopScriptHooks) OnScriptComplete(context.Context, string, int, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, int, time.Duration) {}
func (NoopServerHooks) OnMutation(context.Context, string, int, int)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	scriptHooks ScriptHooks = NoopScriptHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	serverHooks ServerHooks = NoopServerHooks{}
	hooksMu     sync.RWMutex
)

// SetScriptHooks registers custom script hooks.
// This should be called once at application startup before any script runs.
func SetScriptHooks(h ScriptHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scriptHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetServerHooks registers custom server hooks.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Script returns the registered script hooks.
func Script() ScriptHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scriptHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scriptHooks = NoopScriptHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}
