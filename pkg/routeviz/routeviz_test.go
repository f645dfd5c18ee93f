package routeviz

import (
	"strings"
	"testing"

	"github.com/pathlight/pathlight/pkg/route"
)

func testTree(t *testing.T) *route.Tree {
	t.Helper()
	tree, err := route.New(route.Def{Path: "/", Name: "home", Children: []route.Def{
		{Path: "about", Name: "about"},
		{Path: "post/:id", Name: "post"},
		{Path: "docs/*rest", Name: "docs"},
	}})
	if err != nil {
		t.Fatalf("route.New: %v", err)
	}
	return tree
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testTree(t), Options{})

	for _, want := range []string{
		"digraph routes {",
		`"/" [label="/"];`,
		`"/" -> "/about";`,
		`"/" -> "/post/:id";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Param and splat nodes are styled dashed.
	if !strings.Contains(dot, `"/post/:id" [label=":id", style="rounded,filled,dashed"`) {
		t.Errorf("param node not styled:\n%s", dot)
	}
	if !strings.Contains(dot, `"/docs/*rest"`) {
		t.Errorf("splat node missing:\n%s", dot)
	}
}

func TestToDOTNames(t *testing.T) {
	dot := ToDOT(testTree(t), Options{Names: true})
	if !strings.Contains(dot, `label="about\n(about)"`) {
		t.Errorf("names not in labels:\n%s", dot)
	}
}

func TestToDOTHighlight(t *testing.T) {
	dot := ToDOT(testTree(t), Options{Highlight: "/post/7"})

	if !strings.Contains(dot, `"/post/:id" [label=":id", style="rounded,filled,dashed", fillcolor=lightyellow, color=blue, penwidth=2];`) {
		t.Errorf("matched route not highlighted:\n%s", dot)
	}
	// The root is part of the active chain.
	if !strings.Contains(dot, `"/" [label="/", color=blue, penwidth=2];`) {
		t.Errorf("ancestor not highlighted:\n%s", dot)
	}
	// Unrelated routes stay plain.
	if strings.Contains(dot, `"/about" [label="about", color=blue`) {
		t.Errorf("unrelated route highlighted:\n%s", dot)
	}
}
