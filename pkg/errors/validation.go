package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateSessionID validates a session identifier for safety and correctness.
// Session IDs name history files and store keys, so names that could be used
// for path traversal or key injection are rejected.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No path separators or traversal sequences (.., /, \)
//   - No null bytes
//   - Maximum length of 128 characters
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSession, "session id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidSession, "session id too long (max 128 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSession, "session id contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidSession, "session id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateOrigin validates a document origin. An origin is scheme://host with
// an optional port and nothing else: no path, query, fragment, or userinfo.
func ValidateOrigin(origin string) error {
	if origin == "" {
		return New(ErrCodeInvalidHref, "origin cannot be empty")
	}

	u, err := url.Parse(origin)
	if err != nil {
		return Wrap(ErrCodeInvalidHref, err, "parse origin %q", origin)
	}

	if u.Scheme == "" || u.Host == "" {
		return New(ErrCodeInvalidHref, "origin %q must be scheme://host", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return New(ErrCodeInvalidHref, "origin %q must not carry a path, query, fragment, or userinfo", origin)
	}

	return nil
}
