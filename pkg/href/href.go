// Package href implements path and origin resolution for navigation targets.
//
// The package answers two questions the navigation core keeps asking:
//
//  1. Where does this link point? [Resolve] turns a possibly-relative href into
//     an absolute path, resolved against the base path of the nested route the
//     link was rendered in.
//  2. Does this link stay on this site? [SameOrigin] compares a link's origin
//     against the document origin, which decides whether a click may be
//     intercepted at all.
//
// # Resolution Rules
//
// Resolution follows RFC 3986 relative-reference semantics restricted to
// path-only references, with one deliberate deviation: the base path is treated
// as a directory, so a bare segment nests under the current route instead of
// replacing its last segment. A link href="1" rendered under /post resolves to
// /post/1. This matches nested-route conventions rather than browser address
// bar behavior.
//
//   - An absolute href (leading "/") replaces the base entirely.
//   - Relative hrefs are appended to the base, then "." and ".." segments are
//     removed per RFC 3986 §5.2.4. ".." never climbs above the root.
//   - Trailing slashes are stripped during normalization, except for "/".
//   - An empty href resolves to the base itself.
//   - Query strings and fragments are carried through untouched.
package href

import (
	"net/url"
	"strings"

	"github.com/pathlight/pathlight/pkg/errors"
)

// Resolve resolves ref against base and returns a normalized absolute path.
// base must be an absolute path ("" is treated as "/"). If ref is a full URL,
// only its path component is resolved (callers check origin separately with
// [SameOrigin]).
func Resolve(base, ref string) string {
	path, suffix := splitPath(ref)

	// Full and scheme-relative URLs contribute only their path.
	if u, err := url.Parse(path); err == nil && (u.IsAbs() || u.Host != "") {
		path = u.Path
		if path == "" {
			path = "/"
		}
		return Normalize(path) + suffix
	}

	switch {
	case path == "":
		return Normalize(base) + suffix
	case strings.HasPrefix(path, "/"):
		return Normalize(path) + suffix
	default:
		// Base acts as a directory: keep all of its segments.
		merged := strings.TrimSuffix(Normalize(base), "/") + "/" + path
		return Normalize(merged) + suffix
	}
}

// Normalize removes "." and ".." segments, collapses repeated slashes, ensures
// a leading slash, and strips the trailing slash (the root path "/" excepted).
func Normalize(p string) string {
	if p == "" {
		return "/"
	}

	var out []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
			// skip
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}

	if len(out) == 0 {
		return "/"
	}
	return "/" + strings.Join(out, "/")
}

// Origin returns the scheme://host[:port] origin of rawurl, with default ports
// folded (http :80 and https :443 are dropped). Path-only references have no
// origin and return "", as do scheme-relative references, whose origin depends
// on the document's scheme (see [SameOrigin]). An unparseable URL returns an INVALID_HREF error.
func Origin(rawurl string) (string, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidHref, err, "parse %q", rawurl)
	}
	if !u.IsAbs() {
		return "", nil
	}
	if u.Host == "" {
		// Opaque schemes (mailto:, tel:) have no authority. Report the scheme
		// as the origin so they never compare equal to a document origin.
		return strings.ToLower(u.Scheme) + ":", nil
	}

	host := strings.ToLower(u.Host)
	switch u.Scheme {
	case "http":
		host = strings.TrimSuffix(host, ":80")
	case "https":
		host = strings.TrimSuffix(host, ":443")
	}
	return strings.ToLower(u.Scheme) + "://" + host, nil
}

// SameOrigin reports whether a link with the given href stays on the document
// origin. Path-relative hrefs are always same-origin. A scheme-relative href
// ("//host/path") borrows the document's scheme, so its authority alone
// decides. Unparseable hrefs are reported as cross-origin so that clicks on
// them fall through to the browser.
func SameOrigin(docOrigin, href string) bool {
	if u, err := url.Parse(href); err == nil && !u.IsAbs() && u.Host != "" {
		d, derr := url.Parse(docOrigin)
		if derr != nil || !d.IsAbs() {
			return false
		}
		href = d.Scheme + ":" + href
	}

	o, err := Origin(href)
	if err != nil {
		return false
	}
	if o == "" {
		return true
	}

	doc, err := Origin(docOrigin)
	if err != nil || doc == "" {
		// A relative document origin cannot vouch for any absolute link.
		return false
	}
	return o == doc
}

// splitPath separates the path from any query/fragment suffix so the suffix
// survives resolution verbatim.
func splitPath(ref string) (path, suffix string) {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i], ref[i:]
	}
	return ref, ""
}
