// Package anchor implements Pathlight's enhanced link component.
//
// [A] is a drop-in replacement for a plain hyperlink that additionally:
//
//   - resolves its href relative to the nested route it is rendered in
//     (a link href="1" inside the /post route points at /post/1)
//   - marks itself with aria-current="page" when its resolved target equals
//     the current location, for assistive technology and styling
//
// Rendering produces an x/net/html node, so the component slots into any
// server-side rendering pipeline that works with parsed HTML. A rendered link
// is still an anchor: clicking it goes through the same interception contract
// as every other link ([intercept.Decide]; see [A.Click]).
package anchor

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pathlight/pathlight/pkg/intercept"
	"github.com/pathlight/pathlight/pkg/router"
)

// A is the enhanced link component. The zero value renders an empty link to
// the current route.
type A struct {
	Href     string // possibly relative to the enclosing route
	Text     string // link text content
	Target   string // target attribute, "" omits it
	Download bool   // download attribute (boolean form)
	Rel      string // rel attribute, "" omits it
	Class    string // class attribute, "" omits it

	// Attrs carries any further attributes verbatim (data-*, id, …).
	Attrs map[string]string
}

// AriaCurrentPage is the aria-current value an active link carries.
const AriaCurrentPage = "page"

// Resolve returns the link's absolute target for the given route context.
func (a A) Resolve(rc router.RouteContext) string {
	return rc.Resolve(a.Href)
}

// Active reports whether the link's resolved target equals the current
// location path. Queries and fragments on the href don't count against it.
func (a A) Active(rc router.RouteContext) bool {
	return rc.IsActive(pathOnly(a.Resolve(rc)))
}

// Render produces the <a> element for the given route context. The href
// attribute holds the resolved absolute target; aria-current="page" is set
// exactly when the link is active.
func (a A) Render(rc router.RouteContext) *html.Node {
	resolved := a.Resolve(rc)

	attrs := []html.Attribute{{Key: "href", Val: resolved}}
	if a.Class != "" {
		attrs = append(attrs, html.Attribute{Key: "class", Val: a.Class})
	}
	if a.Rel != "" {
		attrs = append(attrs, html.Attribute{Key: "rel", Val: a.Rel})
	}
	if a.Target != "" {
		attrs = append(attrs, html.Attribute{Key: "target", Val: a.Target})
	}
	if a.Download {
		attrs = append(attrs, html.Attribute{Key: "download"})
	}
	if rc.IsActive(pathOnly(resolved)) {
		attrs = append(attrs, html.Attribute{Key: "aria-current", Val: AriaCurrentPage})
	}

	// Extra attributes in stable order.
	keys := make([]string, 0, len(a.Attrs))
	for k := range a.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, html.Attribute{Key: k, Val: a.Attrs[k]})
	}

	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.A,
		Data:     "a",
		Attr:     attrs,
	}
	if a.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: a.Text})
	}
	return n
}

// RenderHTML renders the link and serializes it to an HTML fragment.
func (a A) RenderHTML(rc router.RouteContext) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, a.Render(rc)); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Click builds the click event a user interaction with this link produces,
// with the href already resolved against the route context. Feed it to a
// router and the standard interception contract applies.
func (a A) Click(rc router.RouteContext, mods intercept.Modifiers) intercept.Click {
	return intercept.Click{
		Mod: mods,
		Anchor: intercept.Anchor{
			Href:     a.Resolve(rc),
			Target:   a.Target,
			Download: a.Download,
			Rel:      a.Rel,
		},
	}
}

// FromNode extracts the interception-relevant attributes from a parsed <a>
// element. It returns false if n is not an anchor element.
func FromNode(n *html.Node) (intercept.Anchor, bool) {
	if n == nil || n.Type != html.ElementNode || n.DataAtom != atom.A {
		return intercept.Anchor{}, false
	}

	var a intercept.Anchor
	for _, attr := range n.Attr {
		if attr.Namespace != "" {
			continue
		}
		switch strings.ToLower(attr.Key) {
		case "href":
			a.Href = attr.Val
		case "target":
			a.Target = attr.Val
		case "download":
			a.Download = true
		case "rel":
			a.Rel = attr.Val
		}
	}
	return a, true
}

func pathOnly(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		return p[:i]
	}
	return p
}
