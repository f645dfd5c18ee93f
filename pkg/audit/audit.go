// Package audit explains how a page's links behave under click interception.
//
// ScanHTML walks a server-rendered document, finds every anchor element, and
// reports the decision a plain left-click would get: handled in-page, or left
// to the browser and why. The pathlight CLI exposes this as `pathlight audit`
// for checking that a page's links do what their authors expect.
package audit

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pathlight/pathlight/pkg/anchor"
	"github.com/pathlight/pathlight/pkg/intercept"
)

// Finding is the audit result for one anchor element.
type Finding struct {
	Href     string
	Text     string // text content, for identification
	Decision intercept.Decision
}

// ScanHTML parses an HTML document and returns one [Finding] per anchor, in
// document order. docOrigin is the origin the page is served from; it decides
// the cross-origin bail-out.
func ScanHTML(r io.Reader, docOrigin string) ([]Finding, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return ScanNode(doc, docOrigin), nil
}

// ScanNode audits every anchor under an already-parsed node.
func ScanNode(root *html.Node, docOrigin string) []Finding {
	var out []Finding

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if a, ok := anchor.FromNode(n); ok {
			out = append(out, Finding{
				Href:     a.Href,
				Text:     textContent(n),
				Decision: intercept.Decide(docOrigin, intercept.Click{Anchor: a}),
			})
			// Nested anchors are invalid HTML; the parser splits them anyway.
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// Summary aggregates findings by outcome.
type Summary struct {
	Total       int
	Intercepted int
	Deferred    map[intercept.Reason]int
}

// Summarize tallies a scan's findings.
func Summarize(findings []Finding) Summary {
	s := Summary{Total: len(findings), Deferred: map[intercept.Reason]int{}}
	for _, f := range findings {
		if f.Decision.Intercept {
			s.Intercepted++
			continue
		}
		s.Deferred[f.Decision.Reason]++
	}
	return s
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
		return ""
	}

	var s string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s += textContent(c)
	}
	return s
}
