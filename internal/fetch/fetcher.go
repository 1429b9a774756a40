// Package fetch retrieves external resources over HTTP and performs
// format-specific post-processing, most notably inlining the font files
// referenced from a fetched Google Fonts stylesheet.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/offdeck/offdeck/internal/classify"
	"github.com/offdeck/offdeck/internal/resource"
)

// ErrIneligible is returned when a URL fails the classifier; the fetcher
// re-checks eligibility defensively even though callers pre-filter.
var ErrIneligible = errors.New("url not eligible for embedding")

// Some CDNs refuse requests without a browser user agent, and the Google
// Fonts CSS endpoint varies its payload format on it.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher downloads single resources. It is safe for concurrent use.
type Fetcher struct {
	client     *http.Client
	classifier *classify.Classifier
}

// New creates a Fetcher with the given per-request timeout.
func New(classifier *classify.Classifier, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:     &http.Client{Timeout: timeout},
		classifier: classifier,
	}
}

// Fetch retrieves one URL and returns its record. Font stylesheets get
// their referenced font files embedded as data URIs before the record is
// built. A failure affects only this URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*resource.Record, error) {
	if !f.classifier.Eligible(rawURL) {
		return nil, fmt.Errorf("%w: %s", ErrIneligible, rawURL)
	}

	if isFontStylesheet(rawURL) {
		return f.fetchFontStylesheet(ctx, rawURL)
	}

	content, contentType, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	return &resource.Record{
		URL:       rawURL,
		Kind:      resource.KindFor(contentType, rawURL),
		Content:   content,
		FetchedAt: time.Now(),
		Origin:    resource.OriginNetwork,
	}, nil
}

// get performs one GET and returns body bytes plus the declared content type.
func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("fetching %s: unexpected status %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading body of %s: %w", rawURL, err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// isFontStylesheet reports whether the URL is a Google Fonts CSS endpoint.
func isFontStylesheet(rawURL string) bool {
	return strings.Contains(rawURL, "fonts.googleapis.com/css")
}
