// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about navigation decisions, transitions, and history writes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the navigation core dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetNavigationHooks(&myNavHooks{})
//	    observability.SetHistoryHooks(&myHistoryHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Navigation().OnDecision(ctx, href, reason, intercepted)
//	observability.Navigation().OnNavigate(ctx, from, to, routeID)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Navigation Hooks
// =============================================================================

// NavigationHooks receives events from the navigation core.
type NavigationHooks interface {
	// OnDecision records one click-interception decision.
	OnDecision(ctx context.Context, href, reason string, intercepted bool)

	// OnNavigate records a completed in-page transition.
	OnNavigate(ctx context.Context, from, to, routeID string)

	// OnNavigateError records a failed transition (e.g. no matching route).
	OnNavigateError(ctx context.Context, to string, err error)
}

// =============================================================================
// History Hooks
// =============================================================================

// HistoryHooks receives events from history store operations.
type HistoryHooks interface {
	// OnAppend records a visit written to a history store.
	OnAppend(ctx context.Context, backend, sessionID string, duration time.Duration, err error)

	// OnRead records a history read.
	OnRead(ctx context.Context, backend, sessionID string, count int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopNavigationHooks is a no-op implementation of NavigationHooks.
type NoopNavigationHooks struct{}

func (NoopNavigationHooks) OnDecision(context.Context, string, string, bool) {}
func (NoopNavigationHooks) OnNavigate(context.Context, string, string, string) {
}
func (NoopNavigationHooks) OnNavigateError(context.Context, string, error) {}

// NoopHistoryHooks is a no-op implementation of HistoryHooks.
type NoopHistoryHooks struct{}

func (NoopHistoryHooks) OnAppend(context.Context, string, string, time.Duration, error) {}
func (NoopHistoryHooks) OnRead(context.Context, string, string, int, error)             {}

// =============================================================================
// Global Registry
// =============================================================================

var (
	navigationHooks NavigationHooks = NoopNavigationHooks{}
	historyHooks    HistoryHooks    = NoopHistoryHooks{}
	hooksMu         sync.RWMutex
)

// SetNavigationHooks registers custom navigation hooks.
// This should be called once at application startup before any navigation.
func SetNavigationHooks(h NavigationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		navigationHooks = h
	}
}

// SetHistoryHooks registers custom history hooks.
// This should be called once at application startup before any store operations.
func SetHistoryHooks(h HistoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		historyHooks = h
	}
}

// Navigation returns the registered navigation hooks.
func Navigation() NavigationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return navigationHooks
}

// History returns the registered history hooks.
func History() HistoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return historyHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	navigationHooks = NoopNavigationHooks{}
	historyHooks = NoopHistoryHooks{}
}
