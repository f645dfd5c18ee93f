package router

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pathlight/pathlight/pkg/errors"
	"github.com/pathlight/pathlight/pkg/history"
	"github.com/pathlight/pathlight/pkg/href"
	"github.com/pathlight/pathlight/pkg/intercept"
	"github.com/pathlight/pathlight/pkg/observability"
	"github.com/pathlight/pathlight/pkg/reactive"
	"github.com/pathlight/pathlight/pkg/route"
)

// Location is the page the user is currently viewing.
type Location struct {
	Path    string            // normalized concrete path, e.g. "/post/1"
	RouteID string            // matched route pattern, e.g. "/post/:id"
	Params  map[string]string // captured params
}

// Option configures a [Router].
type Option func(*Router)

// WithOrigin sets the document origin used for the cross-origin bail-out.
// Defaults to DefaultOrigin.
func WithOrigin(origin string) Option {
	return func(r *Router) { r.origin = origin }
}

// WithRecorder records every completed transition as a visit in store, keyed
// by sessionID. Recording failures are reported to the history hooks but do
// not fail the navigation.
func WithRecorder(store history.Store, sessionID string) Option {
	return func(r *Router) {
		r.recorder = store
		r.sessionID = sessionID
	}
}

// DefaultOrigin is used when no origin is configured. It keeps all
// path-relative links same-origin, which is what tests and the TUI want.
const DefaultOrigin = "https://localhost"

// Router performs in-page navigation over a route tree.
type Router struct {
	tree      *route.Tree
	origin    string
	recorder  history.Store
	sessionID string

	path     *reactive.Signal[string]
	selector *reactive.Selector[string]
	delegate *intercept.Delegate

	mu      sync.RWMutex
	loc     Location
	back    []Location // session history behind the current entry
	forward []Location // entries ahead after going back
}

// New creates a router over tree. The router starts stopped with an empty
// location; call [Router.Start] to attach the click listener and perform the
// initial navigation.
func New(tree *route.Tree, opts ...Option) (*Router, error) {
	if tree == nil {
		return nil, errors.New(errors.ErrCodeInternal, "router needs a route tree")
	}

	r := &Router{
		tree:   tree,
		origin: DefaultOrigin,
		path:   reactive.NewSignal(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.selector = reactive.NewSelector(r.path)
	r.delegate = intercept.NewDelegate(r.handleClick)
	return r, nil
}

// Start attaches the document-level click listener and navigates to initial.
func (r *Router) Start(ctx context.Context, initial string) error {
	if err := r.Navigate(ctx, initial); err != nil {
		return err
	}
	r.delegate.Attach()
	return nil
}

// Stop detaches the click listener. The location is left in place so a
// stopped router can still be inspected, and Start may be called again.
func (r *Router) Stop() {
	r.delegate.Detach()
}

// Running reports whether the click listener is attached.
func (r *Router) Running() bool {
	return r.delegate.Attached()
}

// Origin returns the document origin the router intercepts for.
func (r *Router) Origin() string {
	return r.origin
}

// Location returns the current location. Params are a copy; mutate freely.
func (r *Router) Location() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneLocation(r.loc)
}

// PathSignal exposes the current path as a signal for watchers.
func (r *Router) PathSignal() *reactive.Signal[string] {
	return r.path
}

// Selector exposes the keyed active-path selector used for aria-current
// marking. Many links can Bind against it without each watching the signal.
func (r *Router) Selector() *reactive.Selector[string] {
	return r.selector
}

// Navigate performs one in-page transition to the given path. The path is
// matched against the route tree; an unmatched path returns a ROUTE_NOT_FOUND
// error and leaves the location unchanged.
func (r *Router) Navigate(ctx context.Context, to string) error {
	// Route matching is path-only; queries and fragments don't participate.
	if i := strings.IndexAny(to, "?#"); i >= 0 {
		to = to[:i]
	}

	m, ok := r.tree.Match(to)
	if !ok {
		err := errors.New(errors.ErrCodeRouteNotFound, "no route matches %q", to)
		observability.Navigation().OnNavigateError(ctx, to, err)
		return err
	}

	r.mu.Lock()
	from := r.loc
	if from.Path == m.Path {
		// Navigating to the current location is a no-op, not a history entry.
		r.mu.Unlock()
		return nil
	}
	if from.Path != "" {
		r.back = append(r.back, from)
	}
	r.forward = nil
	r.loc = Location{Path: m.Path, RouteID: m.Route.ID(), Params: m.Params}
	r.mu.Unlock()

	r.afterMove(ctx, from.Path, m.Path, m.Route.ID())
	return nil
}

// Back moves one entry back in the session history.
// Returns false when there is nothing to go back to.
func (r *Router) Back(ctx context.Context) bool {
	r.mu.Lock()
	if len(r.back) == 0 {
		r.mu.Unlock()
		return false
	}
	from := r.loc
	last := r.back[len(r.back)-1]
	r.back = r.back[:len(r.back)-1]
	r.forward = append(r.forward, from)
	r.loc = last
	r.mu.Unlock()

	r.afterMove(ctx, from.Path, last.Path, last.RouteID)
	return true
}

// Forward moves one entry forward after a Back.
// Returns false when there is nothing ahead.
func (r *Router) Forward(ctx context.Context) bool {
	r.mu.Lock()
	if len(r.forward) == 0 {
		r.mu.Unlock()
		return false
	}
	from := r.loc
	next := r.forward[len(r.forward)-1]
	r.forward = r.forward[:len(r.forward)-1]
	r.back = append(r.back, from)
	r.loc = next
	r.mu.Unlock()

	r.afterMove(ctx, from.Path, next.Path, next.RouteID)
	return true
}

// CanGoBack reports whether Back has anywhere to go.
func (r *Router) CanGoBack() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.back) > 0
}

// CanGoForward reports whether Forward has anywhere to go.
func (r *Router) CanGoForward() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.forward) > 0
}

// afterMove publishes the new path and records the visit.
func (r *Router) afterMove(ctx context.Context, fromPath, toPath, routeID string) {
	r.path.Set(toPath)
	observability.Navigation().OnNavigate(ctx, fromPath, toPath, routeID)

	if r.recorder != nil {
		start := time.Now()
		err := r.recorder.Append(ctx, history.NewVisit(r.sessionID, toPath, routeID))
		observability.History().OnAppend(ctx, "recorder", r.sessionID, time.Since(start), err)
	}
}

// Click delivers a click to the router's delegate. While the router is
// stopped the click is not delivered and the zero decision is returned; the
// browser keeps it.
func (r *Router) Click(ctx context.Context, c intercept.Click) (intercept.Decision, bool) {
	return r.delegate.Dispatch(ctx, c)
}

// handleClick is the delegate handler: one decision, at most one transition.
func (r *Router) handleClick(ctx context.Context, c intercept.Click) intercept.Decision {
	d := intercept.Decide(r.origin, c)
	observability.Navigation().OnDecision(ctx, c.Anchor.Href, string(d.Reason), d.Intercept)
	if !d.Intercept {
		return d
	}

	target := href.Resolve(r.Location().Path, c.Anchor.Href)
	if err := r.Navigate(ctx, target); err != nil {
		// The decision already suppressed the default action; an unmatched
		// route simply leaves the location as it was.
		return d
	}
	return d
}

func cloneLocation(l Location) Location {
	if l.Params == nil {
		return l
	}
	params := make(map[string]string, len(l.Params))
	for k, v := range l.Params {
		params[k] = v
	}
	l.Params = params
	return l
}
