package observability

import (
	"context"
	"testing"
	"time"
)

type testNavigationHooks struct {
	decisions int
	navigates int
	errors    int
}

func (h *testNavigationHooks) OnDecision(context.Context, string, string, bool) { h.decisions++ }
func (h *testNavigationHooks) OnNavigate(context.Context, string, string, string) {
	h.navigates++
}
func (h *testNavigationHooks) OnNavigateError(context.Context, string, error) { h.errors++ }

type testHistoryHooks struct {
	appends int
	reads   int
}

func (h *testHistoryHooks) OnAppend(context.Context, string, string, time.Duration, error) {
	h.appends++
}
func (h *testHistoryHooks) OnRead(context.Context, string, string, int, error) { h.reads++ }

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	n := NoopNavigationHooks{}
	n.OnDecision(ctx, "/about", "intercept", true)
	n.OnNavigate(ctx, "/", "/about", "/about")
	n.OnNavigateError(ctx, "/missing", nil)

	h := NoopHistoryHooks{}
	h.OnAppend(ctx, "memory", "sess", time.Millisecond, nil)
	h.OnRead(ctx, "memory", "sess", 3, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Navigation().(NoopNavigationHooks); !ok {
		t.Error("Navigation() should return NoopNavigationHooks by default")
	}
	if _, ok := History().(NoopHistoryHooks); !ok {
		t.Error("History() should return NoopHistoryHooks by default")
	}

	// Set custom hooks
	customNav := &testNavigationHooks{}
	SetNavigationHooks(customNav)
	if Navigation() != customNav {
		t.Error("SetNavigationHooks should set custom hooks")
	}

	customHistory := &testHistoryHooks{}
	SetHistoryHooks(customHistory)
	if History() != customHistory {
		t.Error("SetHistoryHooks should set custom hooks")
	}

	// Nil registrations are ignored
	SetNavigationHooks(nil)
	if Navigation() != customNav {
		t.Error("SetNavigationHooks(nil) should keep existing hooks")
	}

	// Reset restores defaults
	Reset()
	if _, ok := Navigation().(NoopNavigationHooks); !ok {
		t.Error("Reset should restore NoopNavigationHooks")
	}
}

func TestHooksAreInvoked(t *testing.T) {
	Reset()
	defer Reset()

	nav := &testNavigationHooks{}
	SetNavigationHooks(nav)

	ctx := context.Background()
	Navigation().OnDecision(ctx, "/about", "intercept", true)
	Navigation().OnNavigate(ctx, "/", "/about", "/about")

	if nav.decisions != 1 || nav.navigates != 1 {
		t.Errorf("hooks saw decisions=%d navigates=%d, want 1 and 1", nav.decisions, nav.navigates)
	}
}
