package router_test

import (
	"context"
	"fmt"

	"github.com/pathlight/pathlight/pkg/intercept"
	"github.com/pathlight/pathlight/pkg/route"
	"github.com/pathlight/pathlight/pkg/router"
)

func Example() {
	ctx := context.Background()

	tree, _ := route.New(route.Def{Path: "/", Children: []route.Def{
		{Path: "about"},
		{Path: "post/:id"},
	}})

	r, _ := router.New(tree, router.WithOrigin("https://myapp.com"))
	_ = r.Start(ctx, "/")
	defer r.Stop()

	// A plain click on a same-origin link navigates in-page.
	dec, _ := r.Click(ctx, intercept.Click{Anchor: intercept.Anchor{Href: "/post/1"}})
	fmt.Println("intercepted:", dec.Intercept)
	fmt.Println("location:", r.Location().Path)

	// A ctrl-click is the browser's business; the location stays put.
	dec, _ = r.Click(ctx, intercept.Click{
		Mod:    intercept.Modifiers{Ctrl: true},
		Anchor: intercept.Anchor{Href: "/about"},
	})
	fmt.Println("intercepted:", dec.Intercept)
	fmt.Println("location:", r.Location().Path)
	// Output:
	// intercepted: true
	// location: /post/1
	// intercepted: false
	// location: /post/1
}
