package intercept

import (
	"context"
	"testing"
)

const docOrigin = "https://myapp.com"

func plainClick(href string) Click {
	return Click{Anchor: Anchor{Href: href}}
}

func TestDecideBailsOut(t *testing.T) {
	tests := []struct {
		name  string
		click Click
		want  Reason
	}{
		{
			name: "default already prevented",
			click: Click{
				DefaultPrevented: true,
				Anchor:           Anchor{Href: "/about"},
			},
			want: ReasonDefaultPrevented,
		},
		{
			name:  "meta held",
			click: Click{Mod: Modifiers{Meta: true}, Anchor: Anchor{Href: "/about"}},
			want:  ReasonModifierKey,
		},
		{
			name:  "alt held",
			click: Click{Mod: Modifiers{Alt: true}, Anchor: Anchor{Href: "/about"}},
			want:  ReasonModifierKey,
		},
		{
			name:  "ctrl held",
			click: Click{Mod: Modifiers{Ctrl: true}, Anchor: Anchor{Href: "/about"}},
			want:  ReasonModifierKey,
		},
		{
			name:  "shift held",
			click: Click{Mod: Modifiers{Shift: true}, Anchor: Anchor{Href: "/about"}},
			want:  ReasonModifierKey,
		},
		{
			name:  "target attribute",
			click: Click{Anchor: Anchor{Href: "/about", Target: "_blank"}},
			want:  ReasonTargetAttr,
		},
		{
			name:  "download attribute",
			click: Click{Anchor: Anchor{Href: "/report.pdf", Download: true}},
			want:  ReasonDownloadAttr,
		},
		{
			name:  "rel external",
			click: Click{Anchor: Anchor{Href: "/about", Rel: "external"}},
			want:  ReasonRelExternal,
		},
		{
			name:  "rel external among other tokens",
			click: Click{Anchor: Anchor{Href: "/about", Rel: "noopener external nofollow"}},
			want:  ReasonRelExternal,
		},
		{
			name:  "cross origin",
			click: plainClick("https://example.org/x"),
			want:  ReasonCrossOrigin,
		},
		{
			name:  "scheme-relative cross origin",
			click: plainClick("//evil.example/x"),
			want:  ReasonCrossOrigin,
		},
		{
			name:  "no href",
			click: plainClick(""),
			want:  ReasonNoHref,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(docOrigin, tt.click)
			if d.Intercept {
				t.Fatal("Decide intercepted a click that must defer to the browser")
			}
			if d.Reason != tt.want {
				t.Errorf("Reason = %q, want %q", d.Reason, tt.want)
			}
		})
	}
}

func TestDecideIntercepts(t *testing.T) {
	tests := []struct {
		name string
		href string
		rel  string
	}{
		{"relative path", "/about", ""},
		{"bare segment", "about", ""},
		{"same-origin absolute URL", "https://myapp.com/about", ""},
		{"same-origin scheme-relative URL", "//myapp.com/about", ""},
		{"rel without external token", "/about", "noopener noreferrer"},
		{"rel external must match whole token", "/about", "externalish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(docOrigin, Click{Anchor: Anchor{Href: tt.href, Rel: tt.rel}})
			if !d.Intercept {
				t.Fatalf("Decide deferred (%s), want intercept", d.Reason)
			}
			if d.Reason != ReasonIntercept {
				t.Errorf("Reason = %q, want %q", d.Reason, ReasonIntercept)
			}
		})
	}
}

func TestRelContains(t *testing.T) {
	a := Anchor{Rel: "noopener External nofollow"}
	if !a.RelContains("external") {
		t.Error("RelContains should match case-insensitively")
	}
	if a.RelContains("ext") {
		t.Error("RelContains must match whole tokens only")
	}
}

func TestDelegateLifecycle(t *testing.T) {
	calls := 0
	d := NewDelegate(func(ctx context.Context, c Click) Decision {
		calls++
		return Decide(docOrigin, c)
	})

	ctx := context.Background()

	// Detached: clicks belong to the browser.
	if _, delivered := d.Dispatch(ctx, plainClick("/about")); delivered {
		t.Fatal("detached delegate delivered a click")
	}
	if calls != 0 {
		t.Fatalf("handler ran %d times while detached", calls)
	}

	d.Attach()
	d.Attach() // idempotent: still a single registration
	if !d.Attached() {
		t.Fatal("Attached() = false after Attach")
	}

	dec, delivered := d.Dispatch(ctx, plainClick("/about"))
	if !delivered || !dec.Intercept {
		t.Fatalf("Dispatch = (%+v, %v), want intercepted delivery", dec, delivered)
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}

	d.Detach()
	if d.Attached() {
		t.Fatal("Attached() = true after Detach")
	}
	if _, delivered := d.Dispatch(ctx, plainClick("/about")); delivered {
		t.Fatal("detached delegate delivered a click")
	}
}
