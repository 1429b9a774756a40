package fetch

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/offdeck/offdeck/internal/resource"
)

var (
	fontFaceRe = regexp.MustCompile(`(?s)@font-face\s*\{[^}]+\}`)
	srcURLRe   = regexp.MustCompile(`src:\s*url\(([^)]+)\)`)
)

// fetchFontStylesheet retrieves a font stylesheet, fetches every font
// file its @font-face blocks reference, and rewrites each font URL to a
// data URI of the font bytes. The recursion is single-level: font files
// carry no further embedded references. A font file that fails to fetch
// leaves its URL untouched in the stylesheet; the stylesheet itself is
// still returned.
func (f *Fetcher) fetchFontStylesheet(ctx context.Context, cssURL string) (*resource.Record, error) {
	body, _, err := f.get(ctx, cssURL)
	if err != nil {
		return nil, err
	}
	css := string(body)

	for _, fontURL := range extractFontURLs(css) {
		if !f.classifier.Eligible(fontURL) {
			continue
		}
		content, _, err := f.get(ctx, fontURL)
		if err != nil {
			continue
		}
		font := &resource.Record{URL: fontURL, Kind: resource.KindFont, Content: content}
		css = strings.ReplaceAll(css, fontURL, font.DataURI("font/"+resource.FontFormat(fontURL)))
	}

	return &resource.Record{
		URL:       cssURL,
		Kind:      resource.KindStyle,
		Content:   []byte(css),
		FetchedAt: time.Now(),
		Origin:    resource.OriginNetwork,
	}, nil
}

// extractFontURLs returns the http(s) font file URLs referenced from
// @font-face src declarations, in order of appearance, de-duplicated.
func extractFontURLs(css string) []string {
	var urls []string
	seen := make(map[string]bool)
	for _, block := range fontFaceRe.FindAllString(css, -1) {
		for _, m := range srcURLRe.FindAllStringSubmatch(block, -1) {
			u := strings.Trim(strings.TrimSpace(m[1]), `'"`)
			if !strings.HasPrefix(u, "http") || seen[u] {
				continue
			}
			seen[u] = true
			urls = append(urls, u)
		}
	}
	return urls
}
