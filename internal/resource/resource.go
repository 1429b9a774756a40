// Package resource defines the immutable record produced for every
// fetched external reference. Records are keyed by URL and shared between
// the cache, the fetcher and the inliner.
package resource

import (
	"encoding/base64"
	"net/url"
	"path"
	"strings"
	"time"
)

// Kind categorizes a fetched resource.
type Kind string

const (
	KindStyle  Kind = "style"
	KindScript Kind = "script"
	KindFont   Kind = "font"
	KindOther  Kind = "other"
)

// Origin records where a resource came from in this run.
type Origin string

const (
	OriginCache   Origin = "cache"
	OriginNetwork Origin = "network"
)

// Record holds one fetched resource. Immutable once created; there is
// exactly one record per URL in any aggregated result.
type Record struct {
	URL       string
	Kind      Kind
	Content   []byte
	FetchedAt time.Time
	Origin    Origin
}

// Text returns the decoded text for style and script resources, and the
// empty string for binary kinds.
func (r *Record) Text() string {
	if r.Kind == KindStyle || r.Kind == KindScript {
		return string(r.Content)
	}
	return ""
}

// Base64 returns the standard base64 encoding of the content.
func (r *Record) Base64() string {
	return base64.StdEncoding.EncodeToString(r.Content)
}

// DataURI returns the content as a data URI with the given MIME type.
func (r *Record) DataURI(mime string) string {
	return "data:" + mime + ";base64," + r.Base64()
}

// KindFor classifies a resource from its declared content type, falling
// back to extension sniffing on the URL.
func KindFor(contentType, rawURL string) Kind {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "css"):
		return KindStyle
	case strings.Contains(ct, "javascript"):
		return KindScript
	case strings.Contains(ct, "font"):
		return KindFont
	}
	switch SniffExt(rawURL) {
	case ".css":
		return KindStyle
	case ".js", ".mjs":
		return KindScript
	case ".woff", ".woff2", ".ttf", ".otf", ".eot":
		return KindFont
	}
	return KindOther
}

// SniffExt returns the lower-case file extension of the URL path, or
// empty when the path has none. Query strings are ignored.
func SniffExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.ToLower(path.Ext(rawURL))
	}
	return strings.ToLower(path.Ext(u.Path))
}

// FontFormat maps a font URL to the CSS format/MIME suffix used when the
// font bytes are embedded as a data URI.
func FontFormat(rawURL string) string {
	switch SniffExt(rawURL) {
	case ".woff2":
		return "woff2"
	case ".woff":
		return "woff"
	case ".ttf":
		return "ttf"
	case ".otf":
		return "otf"
	}
	return "woff2"
}
