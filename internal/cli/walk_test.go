package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pathlight/pathlight/pkg/route"
	"github.com/pathlight/pathlight/pkg/router"
)

func newWalkFixture(t *testing.T) WalkModel {
	t.Helper()
	tree, err := route.New(
		route.Def{Path: "/", Name: "home", Children: []route.Def{
			{Path: "about", Name: "about"},
			{Path: "post/:id", Name: "post"},
		}},
	)
	if err != nil {
		t.Fatal(err)
	}
	nav, err := router.New(tree)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := nav.Start(ctx, "/"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(nav.Stop)
	return NewWalkModel(ctx, nav, tree)
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWalkModelEntries(t *testing.T) {
	m := newWalkFixture(t)
	if len(m.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(m.Entries))
	}
	if m.Entries[2].path != "/post/id" {
		t.Errorf("param entry path = %q", m.Entries[2].path)
	}
}

func TestWalkModelNavigate(t *testing.T) {
	m := newWalkFixture(t)

	next, _ := m.Update(keyMsg("j"))
	m = next.(WalkModel)
	if m.Cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("enter"))
	m = next.(WalkModel)
	if m.err != "" {
		t.Fatalf("navigate error: %s", m.err)
	}
	if loc := m.nav.Location(); loc.Path != "/about" {
		t.Errorf("location = %+v", loc)
	}

	next, _ = m.Update(keyMsg("b"))
	m = next.(WalkModel)
	if loc := m.nav.Location(); loc.Path != "/" {
		t.Errorf("after back: %+v", loc)
	}

	next, _ = m.Update(keyMsg("f"))
	m = next.(WalkModel)
	if loc := m.nav.Location(); loc.Path != "/about" {
		t.Errorf("after forward: %+v", loc)
	}
}

func TestWalkModelBackAtStart(t *testing.T) {
	m := newWalkFixture(t)
	next, _ := m.Update(keyMsg("b"))
	m = next.(WalkModel)
	if m.err == "" {
		t.Error("back at start should set an error")
	}
}

func TestWalkModelView(t *testing.T) {
	m := newWalkFixture(t)
	view := m.View()
	for _, want := range []string{"/post/:id", "about", "at / (/)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestWalkModelQuit(t *testing.T) {
	m := newWalkFixture(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}
