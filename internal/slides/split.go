// Package slides turns one input file of concatenated HTML documents
// into per-slide documents and prepares them for merging.
package slides

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoSlides is returned when no slide boundary of any kind is found.
var ErrNoSlides = errors.New("no slides detected in input")

// DefaultTitle is used when the first slide carries no usable heading.
const DefaultTitle = "Slide Deck"

var (
	doctypeRe = regexp.MustCompile(`(?i)<!doctype[^>]*>\s*<html[^>]*>`)
	htmlTagRe = regexp.MustCompile(`(?i)<html[^>]*>`)
	h1Re      = regexp.MustCompile(`(?i)<h1[\s>]`)
	h2Re      = regexp.MustCompile(`(?i)<h2[\s>]`)
)

// Split detects slide boundaries and returns one complete HTML document
// per slide. Boundaries are doctype+root-tag prologues; when the input
// has none, bare <html> tags; when it has none of those either, h1 (then
// h2) headings partition the content into synthetic documents.
func Split(content string) ([]string, error) {
	if s := splitAt(content, doctypeRe); len(s) > 0 {
		return s, nil
	}
	if s := splitAt(content, htmlTagRe); len(s) > 0 {
		return s, nil
	}
	if s := splitSections(content, h1Re); len(s) > 0 {
		return s, nil
	}
	if s := splitSections(content, h2Re); len(s) > 0 {
		return s, nil
	}
	return nil, ErrNoSlides
}

// splitAt cuts the content at every match of the boundary pattern and
// normalizes each piece into a closed <html> document. Content before
// the first boundary is discarded.
func splitAt(content string, boundary *regexp.Regexp) []string {
	locs := boundary.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}
	var out []string
	for i, loc := range locs {
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		piece := strings.TrimSpace(content[loc[0]:end])
		if piece == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(piece), "</html>") {
			piece += "</html>"
		}
		out = append(out, piece)
	}
	return out
}

// splitSections partitions heading-delimited content into synthetic
// documents. Anything before the first heading belongs to no slide.
func splitSections(content string, heading *regexp.Regexp) []string {
	locs := heading.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}
	var out []string
	for i, loc := range locs {
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		section := strings.TrimSpace(content[loc[0]:end])
		if section == "" {
			continue
		}
		out = append(out, "<html><head></head><body>"+section+"</body></html>")
	}
	return out
}
