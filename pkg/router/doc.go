// Package router ties Pathlight together: the route tree, the current
// location, click interception, and session history.
//
// A [Router] owns the two ambient values everything else consults, the
// current location and the nested-route base path, and exposes them as
// explicit, passed-down values instead of hidden globals: the location lives
// in a [reactive.Signal] and the base path travels in a [RouteContext] handed
// to components.
//
// # Lifecycle
//
// The router owns the single document-level click listener through an
// [intercept.Delegate]. [Router.Start] attaches it and performs the initial
// navigation; [Router.Stop] detaches it. Clicks dispatched while stopped fall
// through to default browser behavior.
//
// # Usage
//
//	tree, _ := route.New(route.Def{Path: "/", Children: []route.Def{
//	    {Path: "about"},
//	    {Path: "post/:id"},
//	}})
//
//	r, _ := router.New(tree, router.WithOrigin("https://myapp.com"))
//	if err := r.Start(ctx, "/"); err != nil { ... }
//	defer r.Stop()
//
//	dec, _ := r.Click(ctx, intercept.Click{Anchor: intercept.Anchor{Href: "/post/1"}})
//	// dec.Intercept == true, r.Location().Path == "/post/1"
package router
