package router

import (
	"context"
	"testing"
	"time"

	"github.com/pathlight/pathlight/pkg/errors"
	"github.com/pathlight/pathlight/pkg/history"
	"github.com/pathlight/pathlight/pkg/intercept"
	"github.com/pathlight/pathlight/pkg/observability"
	"github.com/pathlight/pathlight/pkg/route"
)

func testRouter(t *testing.T, opts ...Option) *Router {
	t.Helper()
	tree, err := route.New(route.Def{Path: "/", Children: []route.Def{
		{Path: "about"},
		{Path: "post/:id", Children: []route.Def{
			{Path: "comments"},
		}},
	}})
	if err != nil {
		t.Fatalf("route.New: %v", err)
	}

	opts = append([]Option{WithOrigin("https://myapp.com")}, opts...)
	r, err := New(tree, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestStartStop(t *testing.T) {
	ctx := context.Background()
	r := testRouter(t)

	if r.Running() {
		t.Fatal("router running before Start")
	}

	// Clicks before Start belong to the browser.
	if _, delivered := r.Click(ctx, intercept.Click{Anchor: intercept.Anchor{Href: "/about"}}); delivered {
		t.Fatal("stopped router delivered a click")
	}

	if err := r.Start(ctx, "/"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !r.Running() {
		t.Fatal("router not running after Start")
	}
	if got := r.Location().Path; got != "/" {
		t.Errorf("initial path = %q, want /", got)
	}

	r.Stop()
	if r.Running() {
		t.Fatal("router running after Stop")
	}
}

func TestNavigate(t *testing.T) {
	ctx := context.Background()
	r := testRouter(t)
	if err := r.Start(ctx, "/"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := r.Navigate(ctx, "/post/42"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	loc := r.Location()
	if loc.Path != "/post/42" || loc.RouteID != "/post/:id" || loc.Params["id"] != "42" {
		t.Errorf("Location = %+v", loc)
	}
}

func TestNavigateUnmatchedLeavesLocation(t *testing.T) {
	ctx := context.Background()
	r := testRouter(t)
	if err := r.Start(ctx, "/about"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	err := r.Navigate(ctx, "/no/such/route")
	if err == nil {
		t.Fatal("Navigate accepted an unmatched path")
	}
	if !errors.Is(err, errors.ErrCodeRouteNotFound) {
		t.Errorf("error code = %v, want ROUTE_NOT_FOUND", errors.GetCode(err))
	}
	if got := r.Location().Path; got != "/about" {
		t.Errorf("location moved to %q on failed navigation", got)
	}
}

func TestNavigateStripsQueryAndFragment(t *testing.T) {
	ctx := context.Background()
	r := testRouter(t)
	if err := r.Start(ctx, "/"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := r.Navigate(ctx, "/post/7?tab=raw#top"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if got := r.Location().Path; got != "/post/7" {
		t.Errorf("path = %q, want /post/7", got)
	}
}

func TestClickInterceptsAndNavigates(t *testing.T) {
	ctx := context.Background()
	r := testRouter(t)
	if err := r.Start(ctx, "/"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec, delivered := r.Click(ctx, intercept.Click{Anchor: intercept.Anchor{Href: "/post/1"}})
	if !delivered || !dec.Intercept {
		t.Fatalf("Click = (%+v, %v), want intercepted delivery", dec, delivered)
	}
	if got := r.Location().Path; got != "/post/1" {
		t.Errorf("path = %q after click, want /post/1", got)
	}
}

func TestClickRelativeToCurrentRoute(t *testing.T) {
	ctx := context.Background()
	r := testRouter(t)
	if err := r.Start(ctx, "/post/1"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec, _ := r.Click(ctx, intercept.Click{Anchor: intercept.Anchor{Href: "comments"}})
	if !dec.Intercept {
		t.Fatalf("relative click deferred: %s", dec.Reason)
	}
	if got := r.Location().Path; got != "/post/1/comments" {
		t.Errorf("path = %q, want /post/1/comments", got)
	}
}

func TestClickBailOutsDoNotNavigate(t *testing.T) {
	ctx := context.Background()

	clicks := []intercept.Click{
		{DefaultPrevented: true, Anchor: intercept.Anchor{Href: "/about"}},
		{Mod: intercept.Modifiers{Shift: true}, Anchor: intercept.Anchor{Href: "/about"}},
		{Anchor: intercept.Anchor{Href: "/about", Target: "_blank"}},
		{Anchor: intercept.Anchor{Href: "/about", Download: true}},
		{Anchor: intercept.Anchor{Href: "/about", Rel: "external"}},
		{Anchor: intercept.Anchor{Href: "https://example.org/x"}},
	}

	for _, c := range clicks {
		r := testRouter(t)
		if err := r.Start(ctx, "/"); err != nil {
			t.Fatalf("Start: %v", err)
		}

		dec, delivered := r.Click(ctx, c)
		if !delivered {
			t.Fatal("running router did not deliver the click")
		}
		if dec.Intercept {
			t.Fatalf("click %+v was intercepted, want bail-out", c)
		}
		if got := r.Location().Path; got != "/" {
			t.Errorf("bail-out still navigated to %q", got)
		}
	}
}

func TestBackForward(t *testing.T) {
	ctx := context.Background()
	r := testRouter(t)
	if err := r.Start(ctx, "/"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for _, p := range []string{"/about", "/post/1"} {
		if err := r.Navigate(ctx, p); err != nil {
			t.Fatalf("Navigate(%s): %v", p, err)
		}
	}

	if !r.CanGoBack() {
		t.Fatal("CanGoBack = false after navigating")
	}
	if !r.Back(ctx) {
		t.Fatal("Back failed")
	}
	if got := r.Location().Path; got != "/about" {
		t.Errorf("path after Back = %q, want /about", got)
	}

	if !r.Forward(ctx) {
		t.Fatal("Forward failed")
	}
	if got := r.Location().Path; got != "/post/1" {
		t.Errorf("path after Forward = %q, want /post/1", got)
	}
	if r.CanGoForward() {
		t.Error("CanGoForward = true at the newest entry")
	}

	// A fresh navigation clears the forward entries.
	if !r.Back(ctx) {
		t.Fatal("Back failed")
	}
	if err := r.Navigate(ctx, "/post/2"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if r.CanGoForward() {
		t.Error("Navigate should clear forward history")
	}
}

func TestNavigateToCurrentIsNoOp(t *testing.T) {
	ctx := context.Background()
	r := testRouter(t)
	if err := r.Start(ctx, "/about"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := r.Navigate(ctx, "/about"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if r.CanGoBack() {
		t.Error("navigating to the current path should not grow history")
	}
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemoryStore(0)
	r := testRouter(t, WithRecorder(store, "sess"))
	if err := r.Start(ctx, "/"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := r.Navigate(ctx, "/post/9"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	vs, err := store.Recent(ctx, "sess", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(vs) != 2 {
		t.Fatalf("recorded %d visits, want 2", len(vs))
	}
	if vs[0].Path != "/post/9" || vs[0].RouteID != "/post/:id" {
		t.Errorf("latest visit = %+v", vs[0])
	}
}

type appendHookRecorder struct {
	appends   int
	durations []time.Duration
	lastErr   error
}

func (h *appendHookRecorder) OnAppend(_ context.Context, _, _ string, d time.Duration, err error) {
	h.appends++
	h.durations = append(h.durations, d)
	h.lastErr = err
}

func (h *appendHookRecorder) OnRead(context.Context, string, string, int, error) {}

func TestRecorderEmitsAppendHook(t *testing.T) {
	hook := &appendHookRecorder{}
	observability.SetHistoryHooks(hook)
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	r := testRouter(t, WithRecorder(history.NewMemoryStore(0), "sess"))
	if err := r.Start(ctx, "/"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := r.Navigate(ctx, "/about"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	if hook.appends != 2 {
		t.Fatalf("OnAppend fired %d times, want 2", hook.appends)
	}
	if hook.lastErr != nil {
		t.Errorf("OnAppend err = %v, want nil", hook.lastErr)
	}
	for i, d := range hook.durations {
		if d < 0 {
			t.Errorf("durations[%d] = %v, want >= 0", i, d)
		}
	}
}

func TestPathSignalAndSelector(t *testing.T) {
	ctx := context.Background()
	r := testRouter(t)
	if err := r.Start(ctx, "/"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var seen []string
	cancel := r.PathSignal().Watch(func(p string) { seen = append(seen, p) })
	defer cancel()

	isPost1 := r.Selector().Bind("/post/1")

	if err := r.Navigate(ctx, "/post/1"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if !isPost1() {
		t.Error("selector inactive after navigating to its key")
	}
	if len(seen) != 1 || seen[0] != "/post/1" {
		t.Errorf("signal watcher saw %v", seen)
	}
}

func TestRouteContext(t *testing.T) {
	ctx := context.Background()
	r := testRouter(t)
	if err := r.Start(ctx, "/post/1"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	rc := r.Context()
	if rc.Base() != "/post/1" {
		t.Errorf("Base = %q", rc.Base())
	}
	if got := rc.Resolve("comments"); got != "/post/1/comments" {
		t.Errorf("Resolve = %q", got)
	}
	if !rc.IsActive("/post/1") || rc.IsActive("/post/2") {
		t.Error("IsActive disagrees with the current location")
	}

	static := NewRouteContext("/post/1", "/post/2")
	if static.IsActive("/post/1") {
		t.Error("static context: /post/1 should not be active at /post/2")
	}
	if !static.IsActive("/post/2") {
		t.Error("static context: current path should be active")
	}
}
