// Package classify decides whether an external reference is eligible for
// offline embedding. The decision is a pure predicate over the URL text:
// a deny list of bare domain roots and analytics sub-paths is checked
// first and wins; a list of known CDN path patterns is checked second.
package classify

import (
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

// denyPatterns reject URLs that must never be fetched: bare font-service
// roots (no resource path) and the gstatic stats endpoints.
var denyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://fonts\.gstatic\.com/?$`),
	regexp.MustCompile(`^https?://fonts\.googleapis\.com/?$`),
	regexp.MustCompile(`^https?://fonts\.gstatic\.com/stats/`),
}

// allowPatterns accept the CDN layouts the converter knows how to embed.
// fonts.googleapis.com is limited to CSS endpoints and fonts.gstatic.com
// to actual font files under /s/.
var allowPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://cdn\.jsdelivr\.net/[^/]+/`),
	regexp.MustCompile(`https?://cdnjs\.cloudflare\.com/[^/]+/`),
	regexp.MustCompile(`https?://unpkg\.com/[^/]+/`),
	regexp.MustCompile(`https?://fonts\.googleapis\.com/css`),
	regexp.MustCompile(`https?://fonts\.gstatic\.com/s/`),
	regexp.MustCompile(`https?://ajax\.googleapis\.com/[^/]+/`),
	regexp.MustCompile(`https?://code\.jquery\.com/[^/]+/`),
	regexp.MustCompile(`https?://stackpath\.bootstrapcdn\.com/[^/]+/`),
	regexp.MustCompile(`https?://maxcdn\.bootstrapcdn\.com/[^/]+/`),
}

// Classifier reports URL eligibility. The zero value uses only the
// built-in allow and deny lists; extra user-configured glob patterns may
// widen the allow list.
type Classifier struct {
	extraAllow []string
}

// New creates a Classifier with additional allow globs (doublestar
// syntax, matched against the full URL).
func New(extraAllow []string) *Classifier {
	return &Classifier{extraAllow: extraAllow}
}

// Eligible reports whether url may be fetched and embedded. Deny rules
// are evaluated before any allow rule.
func (c *Classifier) Eligible(url string) bool {
	for _, p := range denyPatterns {
		if p.MatchString(url) {
			return false
		}
	}
	for _, p := range allowPatterns {
		if p.MatchString(url) {
			return true
		}
	}
	for _, g := range c.extraAllow {
		if ok, err := doublestar.Match(g, url); err == nil && ok {
			return true
		}
	}
	return false
}
