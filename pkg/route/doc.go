// Package route implements the nested route tree at the heart of Pathlight.
//
// Routes are declared as a hierarchy of [Def] values. A child's path is
// relative to its parent, so the matched path of a parent is always a prefix
// of its children's matched paths. That nesting is what the rest of the
// library builds on for relative link resolution.
//
// # Patterns
//
// Each path is a sequence of segments:
//
//   - static segments match themselves literally ("post", "about")
//   - ":name" matches exactly one segment and captures it as a param
//   - "*name" (last segment only) matches the remainder of the path
//
// # Matching
//
// [Tree.Match] returns the deepest route whose full pattern consumes the whole
// path. When several children could consume a segment, static segments beat
// params, and params beat splats. Matching is strict: a path that runs past
// every pattern does not match a shallower route.
//
// # Example
//
//	tree, _ := route.New(
//	    route.Def{Path: "/", Children: []route.Def{
//	        {Path: "about"},
//	        {Path: "post/:id", Children: []route.Def{
//	            {Path: "comments"},
//	        }},
//	    }},
//	)
//
//	m, ok := tree.Match("/post/42/comments")
//	// ok == true, m.Params["id"] == "42", m.Route.Pattern() == "/post/:id/comments"
package route
