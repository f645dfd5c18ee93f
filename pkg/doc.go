// Package pkg provides the core libraries for Pathlight in-page navigation.
//
// # Overview
//
// Pathlight gives Go-rendered web UIs the navigation behavior of a
// client-side router: a declarative route tree, anchor clicks that stay
// in-page when they should, relative link resolution, and O(1) active-link
// marking. The pkg directory is organized into four main areas:
//
//  1. Matching - route trees and path resolution ([route], [href])
//  2. Navigation - click decisions and location state ([intercept], [router], [reactive])
//  3. Rendering - link components and diagnostics ([anchor], [audit], [routeviz])
//  4. Persistence - manifests and visit history ([manifest], [history])
//
// # Architecture
//
// The typical flow of one anchor click:
//
//	click event
//	     ↓
//	[intercept] package (bail-out predicates → decision)
//	     ↓
//	[href] package (resolve against the current path)
//	     ↓
//	[route] package (match the route tree, capture params)
//	     ↓
//	[router] package (location update, session history, visit record)
//	     ↓
//	[reactive] package (selector flips the old and new active links)
//
// # Quick Start
//
// Build a tree, start a router, and let it decide a click:
//
//	import (
//	    "context"
//	    "github.com/pathlight/pathlight/pkg/intercept"
//	    "github.com/pathlight/pathlight/pkg/route"
//	    "github.com/pathlight/pathlight/pkg/router"
//	)
//
//	tree, _ := route.New(route.Def{Path: "/", Children: []route.Def{
//	    {Path: "post/:id"},
//	}})
//
//	rt, _ := router.New(tree, router.WithOrigin("https://myapp.com"))
//	_ = rt.Start(context.Background(), "/")
//
//	decision, _ := rt.Click(context.Background(), intercept.Click{
//	    Anchor: intercept.Anchor{Href: "/post/1"},
//	})
//	// decision.Intercept == true; rt.Location().Path == "/post/1"
//
// # Main Packages
//
// ## Matching
//
// [route] - Declarative route trees with static, :param, and *splat segments.
// Matching is deepest-first with static segments beating params beating
// splats at every level.
//
// [href] - Pure path resolution: relative refs against a base path, origin
// extraction, and same-origin checks. The base is treated as a directory, so
// "1" resolved at /post gives /post/1.
//
// ## Navigation
//
// [intercept] - The click decision. Each bail-out predicate (preventDefault,
// modifier keys, target, download, rel="external", cross-origin) hands the
// click back to the browser; otherwise the click navigates in-page.
//
// [router] - Location state over a route tree: Navigate, Back, Forward,
// session history, and the click delegate. One router is one browsing
// session.
//
// [reactive] - Equality-gated signals and the keyed selector that marks the
// active link without waking every other link's watcher.
//
// ## Rendering
//
// [anchor] - The enhanced link component. Renders <a> elements with resolved
// hrefs and aria-current="page" on the active link.
//
// [audit] - Scans rendered HTML and reports, per anchor, whether a click
// would stay in-page and which predicate defers it.
//
// [routeviz] - Route tree diagrams via Graphviz (DOT, SVG, PNG).
//
// ## Persistence
//
// [manifest] - TOML route manifests: declare the tree in pathlight.toml and
// build it into a [route.Tree].
//
// [history] - Visit trail storage behind one Store interface: memory, file,
// Redis, and MongoDB backends.
//
// ## Supporting
//
// [errors] - Error handling with machine-readable codes (ROUTE_NOT_FOUND,
// INVALID_PATTERN, ...).
//
// [observability] - Hook interfaces for navigation and history events with
// no-op defaults.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/route/...    # Specific package
//	go test -run Example       # Examples only
//
// [route]: https://pkg.go.dev/github.com/pathlight/pathlight/pkg/route
// [href]: https://pkg.go.dev/github.com/pathlight/pathlight/pkg/href
// [intercept]: https://pkg.go.dev/github.com/pathlight/pathlight/pkg/intercept
// [router]: https://pkg.go.dev/github.com/pathlight/pathlight/pkg/router
// [reactive]: https://pkg.go.dev/github.com/pathlight/pathlight/pkg/reactive
// [anchor]: https://pkg.go.dev/github.com/pathlight/pathlight/pkg/anchor
// [audit]: https://pkg.go.dev/github.com/pathlight/pathlight/pkg/audit
// [routeviz]: https://pkg.go.dev/github.com/pathlight/pathlight/pkg/routeviz
// [manifest]: https://pkg.go.dev/github.com/pathlight/pathlight/pkg/manifest
// [history]: https://pkg.go.dev/github.com/pathlight/pathlight/pkg/history
// [errors]: https://pkg.go.dev/github.com/pathlight/pathlight/pkg/errors
// [observability]: https://pkg.go.dev/github.com/pathlight/pathlight/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/pathlight/pathlight/pkg/buildinfo
package pkg
