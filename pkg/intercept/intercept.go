// Package intercept decides, for each click on an anchor, whether navigation
// is handled in-page or left to the browser.
//
// The decision is a synchronous, single-shot evaluation of an unordered set of
// independent bail-out predicates. A click falls through to the browser when
// any of them holds:
//
//   - an earlier handler already prevented the default action
//   - a modifier key (Meta, Alt, Ctrl, Shift) was held
//   - the anchor carries a target attribute, a download attribute, or lists
//     "external" in rel
//   - the link's origin differs from the document origin
//
// When none hold, the click is intercepted: the caller suppresses the default
// action and performs an in-page transition instead of a full document load.
//
// The [Delegate] type owns the single document-level listener registration.
// It is attached and detached explicitly by whoever owns the navigation
// lifecycle (in Pathlight, [router.Router.Start] and Stop); there is no
// implicit always-on global.
package intercept

import (
	"context"
	"strings"
	"sync"

	"github.com/pathlight/pathlight/pkg/href"
)

// Modifiers captures the modifier-key state at click time.
type Modifiers struct {
	Meta  bool
	Alt   bool
	Ctrl  bool
	Shift bool
}

// Any reports whether any modifier was held.
func (m Modifiers) Any() bool {
	return m.Meta || m.Alt || m.Ctrl || m.Shift
}

// Anchor is the slice of an anchor element the interceptor cares about.
type Anchor struct {
	Href     string
	Target   string // target attribute value, "" when absent
	Download bool   // download attribute present (value is irrelevant)
	Rel      string // rel attribute value, a space-separated token list
}

// RelContains reports whether the anchor's rel attribute lists token.
// Matching is per HTML rel semantics: space-separated, ASCII case-insensitive.
func (a Anchor) RelContains(token string) bool {
	for _, t := range strings.Fields(a.Rel) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}

// Click is one click event on an anchor.
type Click struct {
	DefaultPrevented bool // an earlier handler called preventDefault
	Mod              Modifiers
	Anchor           Anchor
}

// Reason identifies which predicate settled a [Decision]. When several
// bail-out predicates hold at once, any one of them may be reported.
type Reason string

const (
	// ReasonIntercept: no bail-out predicate held; navigate in-page.
	ReasonIntercept Reason = "intercept"

	// ReasonDefaultPrevented: an earlier handler prevented the default action.
	ReasonDefaultPrevented Reason = "default-prevented"

	// ReasonModifierKey: a modifier key was held (open in new tab, etc.).
	ReasonModifierKey Reason = "modifier-key"

	// ReasonTargetAttr: the anchor targets another browsing context.
	ReasonTargetAttr Reason = "target-attr"

	// ReasonDownloadAttr: the anchor is a download link.
	ReasonDownloadAttr Reason = "download-attr"

	// ReasonRelExternal: the anchor opts out via rel="external".
	ReasonRelExternal Reason = "rel-external"

	// ReasonCrossOrigin: the link leaves the document origin.
	ReasonCrossOrigin Reason = "cross-origin"

	// ReasonNoHref: the anchor has no href to navigate to.
	ReasonNoHref Reason = "no-href"
)

// Decision is the single-shot outcome for one click.
type Decision struct {
	Intercept bool   // true: suppress default, navigate in-page
	Reason    Reason // which predicate settled it
}

// Decide evaluates the bail-out predicates for one click against the given
// document origin and returns the navigation decision. Exactly one decision is
// made per click; nothing is queued or retried.
func Decide(docOrigin string, c Click) Decision {
	switch {
	case c.DefaultPrevented:
		return Decision{Reason: ReasonDefaultPrevented}
	case c.Mod.Any():
		return Decision{Reason: ReasonModifierKey}
	case c.Anchor.Href == "":
		return Decision{Reason: ReasonNoHref}
	case c.Anchor.Target != "":
		return Decision{Reason: ReasonTargetAttr}
	case c.Anchor.Download:
		return Decision{Reason: ReasonDownloadAttr}
	case c.Anchor.RelContains("external"):
		return Decision{Reason: ReasonRelExternal}
	case !href.SameOrigin(docOrigin, c.Anchor.Href):
		return Decision{Reason: ReasonCrossOrigin}
	default:
		return Decision{Intercept: true, Reason: ReasonIntercept}
	}
}

// Handler consumes an intercepted click and returns the decision it acted on.
type Handler func(ctx context.Context, c Click) Decision

// Delegate owns the single document-level click listener. Attach and Detach
// bracket the owning router's lifecycle; clicks dispatched while detached are
// reported as undelivered so callers fall back to default browser behavior.
type Delegate struct {
	mu       sync.RWMutex
	handler  Handler
	attached bool
}

// NewDelegate creates a delegate that will route clicks to h once attached.
func NewDelegate(h Handler) *Delegate {
	return &Delegate{handler: h}
}

// Attach registers the listener. Attaching an attached delegate is a no-op:
// there is never more than one registration per delegate.
func (d *Delegate) Attach() {
	d.mu.Lock()
	d.attached = true
	d.mu.Unlock()
}

// Detach removes the listener.
func (d *Delegate) Detach() {
	d.mu.Lock()
	d.attached = false
	d.mu.Unlock()
}

// Attached reports whether the listener is currently registered.
func (d *Delegate) Attached() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.attached
}

// Dispatch delivers one click to the handler. The returned bool is false when
// the delegate is detached (or has no handler), in which case the zero
// Decision is returned and the click belongs to the browser.
func (d *Delegate) Dispatch(ctx context.Context, c Click) (Decision, bool) {
	d.mu.RLock()
	h, ok := d.handler, d.attached
	d.mu.RUnlock()

	if !ok || h == nil {
		return Decision{}, false
	}
	return h(ctx, c), true
}
