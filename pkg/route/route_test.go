package route

import (
	"testing"

	"github.com/pathlight/pathlight/pkg/errors"
)

func testTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := New(Def{Path: "/", Name: "home", Children: []Def{
		{Path: "about", Name: "about"},
		{Path: "post/:id", Name: "post", Children: []Def{
			{Path: "comments", Name: "comments"},
			{Path: "edit", Name: "edit"},
		}},
		{Path: "docs", Children: []Def{
			{Path: "*rest", Name: "docs-page"},
		}},
		{Path: ":section", Name: "section"},
	}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tree
}

func TestMatch(t *testing.T) {
	tree := testTree(t)

	tests := []struct {
		name       string
		path       string
		wantID     string
		wantParams map[string]string
		wantOK     bool
	}{
		{"root", "/", "/", nil, true},
		{"static", "/about", "/about", nil, true},
		{"param", "/post/42", "/post/:id", map[string]string{"id": "42"}, true},
		{"nested static under param", "/post/42/comments", "/post/:id/comments",
			map[string]string{"id": "42"}, true},
		{"static beats param", "/about", "/about", nil, true},
		{"param fallback", "/news", "/:section", map[string]string{"section": "news"}, true},
		{"splat", "/docs/guide/install", "/docs/*rest",
			map[string]string{"rest": "guide/install"}, true},
		{"splat parent matches exactly", "/docs", "/docs", nil, true},
		{"too deep does not match shallower", "/about/x", "", nil, false},
		{"unnormalized path", "/post//42/", "/post/:id", map[string]string{"id": "42"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := tree.Match(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if m.Route.ID() != tt.wantID {
				t.Errorf("Match(%q).Route.ID() = %q, want %q", tt.path, m.Route.ID(), tt.wantID)
			}
			for k, v := range tt.wantParams {
				if m.Params[k] != v {
					t.Errorf("Params[%q] = %q, want %q", k, m.Params[k], v)
				}
			}
		})
	}
}

func TestMatchPriority(t *testing.T) {
	tree, err := New(Def{Path: "/", Children: []Def{
		{Path: "post/new", Name: "static"},
		{Path: "post/:id", Name: "param"},
		{Path: "post/*rest", Name: "splat"},
	}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for path, want := range map[string]string{
		"/post/new": "static",
		"/post/42":  "param",
		"/post/a/b": "splat",
	} {
		m, ok := tree.Match(path)
		if !ok {
			t.Fatalf("Match(%q) missed", path)
		}
		if m.Route.Name() != want {
			t.Errorf("Match(%q) = %s, want %s", path, m.Route.Name(), want)
		}
	}
}

func TestMatchPriorityNested(t *testing.T) {
	tree, err := New(Def{Path: "/", Children: []Def{
		{Path: "docs", Children: []Def{
			{Path: "*rest", Name: "docs-splat"},
			{Path: "intro", Name: "docs-intro"},
			{Path: ":page", Name: "docs-page"},
		}},
	}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for path, want := range map[string]string{
		"/docs/intro":     "docs-intro",
		"/docs/setup":     "docs-page",
		"/docs/api/types": "docs-splat",
	} {
		m, ok := tree.Match(path)
		if !ok {
			t.Fatalf("Match(%q) missed", path)
		}
		if m.Route.Name() != want {
			t.Errorf("Match(%q) = %s, want %s", path, m.Route.Name(), want)
		}
	}
}

func TestInvalidPatterns(t *testing.T) {
	tests := []struct {
		name string
		defs []Def
	}{
		{"splat not last", []Def{{Path: "a/*x/b"}}},
		{"bare colon", []Def{{Path: "a/:"}}},
		{"splat with children", []Def{{Path: "a/*x", Children: []Def{{Path: "b"}}}}},
		{"duplicate param", []Def{{Path: ":id", Children: []Def{{Path: "x/:id"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.defs...)
			if err == nil {
				t.Fatal("New accepted an invalid pattern")
			}
			if !errors.Is(err, errors.ErrCodeInvalidPattern) {
				t.Errorf("error code = %v, want INVALID_PATTERN", errors.GetCode(err))
			}
		})
	}
}

func TestBase(t *testing.T) {
	tree := testTree(t)

	r, ok := tree.Lookup("/post/:id/comments")
	if !ok {
		t.Fatal("Lookup missed /post/:id/comments")
	}

	base, err := r.Base(map[string]string{"id": "7"})
	if err != nil {
		t.Fatalf("Base: %v", err)
	}
	if base != "/post/7/comments" {
		t.Errorf("Base = %q, want /post/7/comments", base)
	}

	if _, err := r.Base(nil); err == nil {
		t.Error("Base without params should fail")
	}
}

func TestWalkOrder(t *testing.T) {
	tree := testTree(t)

	var ids []string
	tree.Walk(func(r *Route) { ids = append(ids, r.ID()) })

	if len(ids) != tree.Len() {
		t.Fatalf("Walk visited %d routes, tree has %d", len(ids), tree.Len())
	}
	if ids[0] != "/" {
		t.Errorf("Walk should start at the root, got %q", ids[0])
	}

	// Static children sort before param children of the same parent.
	idx := map[string]int{}
	for i, id := range ids {
		idx[id] = i
	}
	if idx["/about"] > idx["/:section"] {
		t.Error("static /about should sort before param /:section")
	}
}
