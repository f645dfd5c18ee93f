package route

import (
	"sort"
	"strings"

	"github.com/pathlight/pathlight/pkg/errors"
	"github.com/pathlight/pathlight/pkg/href"
)

// Def declares one route. Path is relative to the parent route; the root of a
// tree is declared with Path "/".
type Def struct {
	Path     string // pattern segments, e.g. "post/:id"
	Name     string // optional display name
	Children []Def
}

// Route is one node of a built [Tree]. Routes are created by [New] and are
// immutable afterwards.
type Route struct {
	id       string // full pattern, e.g. "/post/:id"
	name     string
	own      []segment // this route's segments, relative to parent
	full     []segment // all segments from the root
	parent   *Route
	children []*Route
}

// segment is one parsed pattern segment.
type segment struct {
	literal string // static text, empty for captures
	param   string // capture name for ":name" and "*name"
	splat   bool
}

// Tree is a built route hierarchy. Trees are safe for concurrent reads.
type Tree struct {
	roots []*Route
	byID  map[string]*Route
}

// Match describes a successful [Tree.Match].
type Match struct {
	Route  *Route
	Path   string            // the normalized concrete path that matched
	Params map[string]string // captured ":name" and "*name" values
}

// New builds a route tree from the given top-level definitions.
// Definitions are validated as they are built; the first invalid pattern
// aborts with an INVALID_PATTERN error.
func New(defs ...Def) (*Tree, error) {
	t := &Tree{byID: map[string]*Route{}}
	for _, d := range defs {
		r, err := build(d, nil)
		if err != nil {
			return nil, err
		}
		t.roots = append(t.roots, r)
	}
	sortByPriority(t.roots)
	t.index()
	return t, nil
}

func build(d Def, parent *Route) (*Route, error) {
	own, err := parseSegments(d.Path)
	if err != nil {
		return nil, err
	}

	r := &Route{name: d.Name, own: own, parent: parent}
	if parent != nil {
		r.full = append(append([]segment{}, parent.full...), own...)
	} else {
		r.full = own
	}
	r.id = patternString(r.full)

	if hasSplat(r.full) && len(d.Children) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidPattern,
			"splat route %q cannot have children", r.id)
	}

	seen := map[string]bool{}
	for _, s := range r.full {
		if s.param != "" && !s.splat {
			if seen[s.param] {
				return nil, errors.New(errors.ErrCodeInvalidPattern,
					"duplicate param :%s in %q", s.param, r.id)
			}
			seen[s.param] = true
		}
	}

	for _, c := range d.Children {
		child, err := build(c, r)
		if err != nil {
			return nil, err
		}
		r.children = append(r.children, child)
	}
	sortByPriority(r.children)
	return r, nil
}

func parseSegments(path string) ([]segment, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, nil
	}

	parts := strings.Split(trimmed, "/")
	segs := make([]segment, 0, len(parts))
	for i, p := range parts {
		switch {
		case p == "" || p == ":" || p == "*:":
			return nil, errors.New(errors.ErrCodeInvalidPattern, "empty segment in %q", path)
		case strings.HasPrefix(p, ":"):
			segs = append(segs, segment{param: p[1:]})
		case strings.HasPrefix(p, "*"):
			if i != len(parts)-1 {
				return nil, errors.New(errors.ErrCodeInvalidPattern,
					"splat must be the last segment in %q", path)
			}
			name := p[1:]
			if name == "" {
				name = "*"
			}
			segs = append(segs, segment{param: name, splat: true})
		default:
			segs = append(segs, segment{literal: p})
		}
	}
	return segs, nil
}

// segKind ranks one pattern segment for matching: static beats param beats
// splat.
func segKind(s segment) int {
	switch {
	case s.splat:
		return 2
	case s.param != "":
		return 1
	default:
		return 0
	}
}

// sortByPriority orders sibling routes for matching. Siblings are compared
// segment by segment, so a shared static prefix never hides the position
// where their kinds diverge ("post/new" before "post/:id" before
// "post/*rest"). Ties fall back to ID order for determinism.
func sortByPriority(routes []*Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		a, b := routes[i].own, routes[j].own
		for k := 0; k < len(a) && k < len(b); k++ {
			if ka, kb := segKind(a[k]), segKind(b[k]); ka != kb {
				return ka < kb
			}
		}
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return routes[i].id < routes[j].id
	})
}

func (t *Tree) index() {
	t.Walk(func(r *Route) {
		t.byID[r.id] = r
	})
}

func hasSplat(segs []segment) bool {
	return len(segs) > 0 && segs[len(segs)-1].splat
}

func patternString(segs []segment) string {
	if len(segs) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		switch {
		case s.splat:
			b.WriteByte('*')
			if s.param != "*" {
				b.WriteString(s.param)
			}
		case s.param != "":
			b.WriteByte(':')
			b.WriteString(s.param)
		default:
			b.WriteString(s.literal)
		}
	}
	return b.String()
}

// Match finds the deepest route whose pattern consumes all of path.
// The path is normalized (see [href.Normalize]) before matching.
func (t *Tree) Match(path string) (*Match, bool) {
	norm := href.Normalize(path)
	segs := splitPath(norm)

	for _, r := range t.roots {
		if hit, params := r.match(segs, nil); hit != nil {
			return &Match{Route: hit, Path: norm, Params: params}, true
		}
	}
	return nil, false
}

// match tries to consume segs with this route's own segments and, if anything
// remains, delegates to children in priority order.
func (r *Route) match(segs []string, params map[string]string) (*Route, map[string]string) {
	rest := segs
	for _, s := range r.own {
		if s.splat {
			params = withParam(params, s.param, strings.Join(rest, "/"))
			return r, params
		}
		if len(rest) == 0 {
			return nil, nil
		}
		switch {
		case s.param != "":
			params = withParam(params, s.param, rest[0])
		case s.literal != rest[0]:
			return nil, nil
		}
		rest = rest[1:]
	}

	if len(rest) == 0 {
		return r, params
	}
	for _, c := range r.children {
		// Children must not share captured params; copy so sibling attempts
		// cannot see each other's captures.
		if hit, p := c.match(rest, cloneParams(params)); hit != nil {
			return hit, p
		}
	}
	return nil, nil
}

func withParam(params map[string]string, key, val string) map[string]string {
	if params == nil {
		params = map[string]string{}
	}
	params[key] = val
	return params
}

func cloneParams(params map[string]string) map[string]string {
	if params == nil {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

func splitPath(p string) []string {
	trimmed := strings.Trim(p, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// ID returns the route's full pattern string, e.g. "/post/:id/comments".
// IDs are stable across rebuilds of the same definitions.
func (r *Route) ID() string { return r.id }

// Name returns the display name from the route's [Def], or "" if unset.
func (r *Route) Name() string { return r.name }

// Pattern is an alias for [Route.ID] that reads better at call sites dealing
// with pattern syntax rather than identity.
func (r *Route) Pattern() string { return r.id }

// Parent returns the enclosing route, or nil for a top-level route.
func (r *Route) Parent() *Route { return r.parent }

// Children returns the nested routes in matching priority order.
// The returned slice must not be modified.
func (r *Route) Children() []*Route { return r.children }

// Base expands the route's full pattern into a concrete path using params.
// Every ":name" must be present in params; a splat may be omitted, in which
// case it expands to nothing.
func (r *Route) Base(params map[string]string) (string, error) {
	if len(r.full) == 0 {
		return "/", nil
	}
	var b strings.Builder
	for _, s := range r.full {
		switch {
		case s.splat:
			if v := params[s.param]; v != "" {
				b.WriteByte('/')
				b.WriteString(strings.Trim(v, "/"))
			}
		case s.param != "":
			v, ok := params[s.param]
			if !ok || v == "" {
				return "", errors.New(errors.ErrCodeInvalidHref,
					"missing param :%s for route %q", s.param, r.id)
			}
			b.WriteByte('/')
			b.WriteString(v)
		default:
			b.WriteByte('/')
			b.WriteString(s.literal)
		}
	}
	return href.Normalize(b.String()), nil
}

// Lookup returns the route with the given ID (full pattern).
func (t *Tree) Lookup(id string) (*Route, bool) {
	r, ok := t.byID[id]
	return r, ok
}

// Walk visits every route depth-first in matching priority order.
func (t *Tree) Walk(fn func(*Route)) {
	var visit func(*Route)
	visit = func(r *Route) {
		fn(r)
		for _, c := range r.children {
			visit(c)
		}
	}
	for _, r := range t.roots {
		visit(r)
	}
}

// Routes returns every route in the tree in depth-first order.
func (t *Tree) Routes() []*Route {
	var out []*Route
	t.Walk(func(r *Route) { out = append(out, r) })
	return out
}

// Len returns the number of routes in the tree.
func (t *Tree) Len() int { return len(t.byID) }
