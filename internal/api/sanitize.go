package api

import (
	"regexp"
	"strings"
)

// Input sanitization for values the client sends to the service: markup and
// malformed addresses are rejected or stripped before the request is built.

var (
	emailRe = regexp.MustCompile(`^[^\s@<>]+@[^\s@<>]+\.[^\s@<>]+$`)
	tagRe   = regexp.MustCompile(`<[^>]*>`)
)

// sanitizeEmail trims, lowercases, and validates an email address. It
// returns the empty string for anything that does not look like an address.
func sanitizeEmail(email string) string {
	s := strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(s) {
		return ""
	}
	return s
}

// sanitizeText strips HTML tags and escapes the remaining angle brackets and
// quotes, keeping free-text fields plain.
func sanitizeText(input string) string {
	s := tagRe.ReplaceAllString(input, "")
	r := strings.NewReplacer(
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)
	return strings.TrimSpace(r.Replace(s))
}

// truncate caps s at max bytes.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
