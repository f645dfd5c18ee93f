// Package routeviz renders route trees as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations of a [route.Tree] using
// Graphviz: each route is a box, each parent-child nesting an arrow. Param and
// splat routes are styled distinctly, and when a current location is supplied
// the matched route chain is highlighted.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := routeviz.ToDOT(tree, routeviz.Options{})
//	svg, err := routeviz.RenderSVG(dot)
//
// For PNG output, use [RenderPNG] with a scale factor.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package routeviz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pathlight/pathlight/pkg/route"
)

// Options configures route diagram rendering.
type Options struct {
	// Highlight marks the route chain matching this path (e.g. the current
	// location). Empty disables highlighting.
	Highlight string

	// Names includes route display names in node labels.
	Names bool
}

// ToDOT converts a route tree to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(t *route.Tree, opts Options) string {
	active := activeChain(t, opts.Highlight)

	var buf bytes.Buffer
	buf.WriteString("digraph routes {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	t.Walk(func(r *route.Route) {
		label := fmtLabel(r, opts.Names)
		attrs := fmtAttrs(r, label, active[r.ID()])
		fmt.Fprintf(&buf, "  %q [%s];\n", r.ID(), strings.Join(attrs, ", "))
	})

	buf.WriteString("\n")
	t.Walk(func(r *route.Route) {
		if p := r.Parent(); p != nil {
			fmt.Fprintf(&buf, "  %q -> %q;\n", p.ID(), r.ID())
		}
	})

	buf.WriteString("}\n")
	return buf.String()
}

// activeChain returns the IDs of the matched route and all its ancestors.
func activeChain(t *route.Tree, path string) map[string]bool {
	chain := map[string]bool{}
	if path == "" {
		return chain
	}
	m, ok := t.Match(path)
	if !ok {
		return chain
	}
	for r := m.Route; r != nil; r = r.Parent() {
		chain[r.ID()] = true
	}
	return chain
}

func fmtLabel(r *route.Route, names bool) string {
	segs := strings.Split(strings.TrimPrefix(r.ID(), "/"), "/")
	own := segs[len(segs)-1]
	if r.ID() == "/" {
		own = "/"
	}
	if names && r.Name() != "" {
		return fmt.Sprintf("%s\n(%s)", own, r.Name())
	}
	return own
}

func fmtAttrs(r *route.Route, label string, active bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}

	last := lastSegmentKind(r.ID())
	switch last {
	case ':':
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightyellow")
	case '*':
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	if active {
		attrs = append(attrs, "color=blue", "penwidth=2")
	}
	return attrs
}

// lastSegmentKind returns ':' for param leaves, '*' for splat leaves, 0 for
// static ones.
func lastSegmentKind(id string) byte {
	segs := strings.Split(strings.TrimPrefix(id, "/"), "/")
	last := segs[len(segs)-1]
	if last == "" {
		return 0
	}
	if last[0] == ':' || last[0] == '*' {
		return last[0]
	}
	return 0
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
// A scale of 2.0 produces a 2x resolution image for high-DPI displays.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if scale > 0 {
		g.SetDPI(72 * scale)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
