package router

import "github.com/pathlight/pathlight/pkg/href"

// RouteContext carries the two ambient values a component needs: the base
// path of the nested route it renders in, and access to the current location.
// It is passed down explicitly through component construction; components
// never reach for a global.
type RouteContext struct {
	base    string
	current func() string
	active  func(string) bool
}

// Context returns the route context for the router's current location: the
// base path is the matched concrete path, the active probe uses the router's
// selector.
func (r *Router) Context() RouteContext {
	return RouteContext{
		base:    r.Location().Path,
		current: r.path.Get,
		active:  r.selector.IsActive,
	}
}

// ContextAt returns a route context based at the given path, for rendering
// components that belong to an outer route of the current page (a layout's
// nav bar rendered at /post while viewing /post/1).
func (r *Router) ContextAt(base string) RouteContext {
	return RouteContext{
		base:    href.Normalize(base),
		current: r.path.Get,
		active:  r.selector.IsActive,
	}
}

// NewRouteContext builds a standalone route context from a base path and the
// current location path. It serves server-side rendering and tests, where no
// live router is around.
func NewRouteContext(base, current string) RouteContext {
	base = href.Normalize(base)
	cur := href.Normalize(current)
	return RouteContext{
		base:    base,
		current: func() string { return cur },
	}
}

// Base returns the nested route's base path.
func (rc RouteContext) Base() string {
	return rc.base
}

// Path returns the current location path.
func (rc RouteContext) Path() string {
	if rc.current == nil {
		return "/"
	}
	return rc.current()
}

// Resolve resolves ref against the context's base path.
func (rc RouteContext) Resolve(ref string) string {
	return href.Resolve(rc.base, ref)
}

// IsActive reports whether target equals the current location path. When the
// context comes from a live router this is the O(1) selector probe.
func (rc RouteContext) IsActive(target string) bool {
	if rc.active != nil {
		return rc.active(target)
	}
	return rc.Path() == target
}
