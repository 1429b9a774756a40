// Package assemble folds processed slide documents into the final
// self-contained deck artifact.
package assemble

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/offdeck/offdeck/internal/chartjs"
	"github.com/offdeck/offdeck/internal/resource"
	"github.com/offdeck/offdeck/internal/slides"
)

// Essential resources the assembler embeds into the document head.
const (
	highlightJSURL  = "https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.9.0/highlight.min.js"
	highlightCSSURL = "https://cdnjs.cloudflare.com/ajax/libs/highlight.js/11.9.0/styles/github.min.css"
	fontAwesomeURL  = "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/css/all.min.css"
)

// Options control the emitted document.
type Options struct {
	// Title becomes the document title; empty falls back to the
	// default deck title.
	Title string
	// StaggerMS is the delay between chart initializations on one
	// slide, in milliseconds. Zero disables staggering; negative
	// falls back to the default.
	StaggerMS int
}

// NewContainerID generates a unique slide container id. The random
// suffix keeps ids collision-free when decks are concatenated or
// converted repeatedly into the same page.
func NewContainerID(index int) string {
	return fmt.Sprintf("slide-%d-%s", index, uuid.NewString()[:8])
}

// Build emits the complete deck: every slide demoted into its container
// in input order, slide CSS scoped to its container, essential resources
// embedded in the head, and the shared runtime plus navigation appended.
// Documents must already carry their container ids and have their
// resources inlined and chart scripts rewritten.
func Build(docs []*slides.Document, records map[string]*resource.Record, opts Options) (string, error) {
	if opts.Title == "" {
		opts.Title = slides.DefaultTitle
	}
	if opts.StaggerMS < 0 {
		opts.StaggerMS = 500
	}

	runtime := strings.ReplaceAll(runtimeScript, staggerToken, strconv.Itoa(opts.StaggerMS))
	if err := chartjs.ValidateScript("offdeck-runtime.js", runtime); err != nil {
		return "", err
	}
	if err := chartjs.ValidateScript("offdeck-manager.js", managerScript); err != nil {
		return "", err
	}

	var body strings.Builder
	for _, doc := range docs {
		if doc.ContainerID == "" {
			doc.ContainerID = NewContainerID(doc.Index)
		}
		prepareStyles(doc, records)
		doc.Demote()
		rendered, err := doc.Render()
		if err != nil {
			return "", fmt.Errorf("rendering slide %d: %w", doc.Index, err)
		}
		body.WriteString(rendered)
		body.WriteByte('\n')
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0, user-scalable=no">
<title>%s</title>
<style>
%s
</style>
%s</head>
<body>
%s
%s
<script>
%s
</script>
<script>
%s
</script>
</body>
</html>
`, html.EscapeString(opts.Title), deckStyle, headResources(records), body.String(),
		navigationHTML, runtime, managerScript), nil
}

// headResources renders the essential styles and scripts. A missing
// record means the fetch failed earlier; the deck still works, only
// highlighting or icons degrade.
func headResources(records map[string]*resource.Record) string {
	var head strings.Builder
	if rec := records[highlightCSSURL]; rec != nil {
		writeStyle(&head, highlightCSSURL, rec.Text())
	}
	if rec := records[fontAwesomeURL]; rec != nil {
		writeStyle(&head, fontAwesomeURL, inlineWebfonts(rec.Text(), records))
	}
	if rec := records[highlightJSURL]; rec != nil {
		fmt.Fprintf(&head, "<script data-original-url=%q>\n%s\n</script>\n",
			highlightJSURL, rec.Text())
	}
	return head.String()
}

func writeStyle(b *strings.Builder, url, css string) {
	fmt.Fprintf(b, "<style data-original-url=%q>\n%s\n</style>\n", url, css)
}

// prepareStyles rewrites each style element of a slide: webfont
// references become data URIs, then the whole sheet is scoped to the
// slide container.
func prepareStyles(doc *slides.Document, records map[string]*resource.Record) {
	slides.Walk(doc.Root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Style {
			return
		}
		css := nodeText(n)
		if css == "" {
			return
		}
		css = inlineWebfonts(css, records)
		setNodeText(n, ScopeCSS(css, doc.ContainerID))
	})
}

// inlineWebfonts replaces relative font references in css with data URIs
// of the fetched font bytes. The Font Awesome sheet addresses its
// webfonts with a handful of path and quoting variants; every one maps
// to the same file name.
func inlineWebfonts(css string, records map[string]*resource.Record) string {
	for url, rec := range records {
		if rec == nil || rec.Kind != resource.KindFont {
			continue
		}
		name := fontFileName(url)
		if name == "" || !strings.Contains(css, name) {
			continue
		}
		repl := "url(" + rec.DataURI("font/"+resource.FontFormat(url)) + ")"
		for _, dir := range []string{"../webfonts/", "./webfonts/", "/webfonts/", "webfonts/", "./", ""} {
			for _, q := range []string{"'", `"`, ""} {
				css = strings.ReplaceAll(css, "url("+q+dir+name+q+")", repl)
			}
		}
	}
	return css
}

func fontFileName(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		url = url[i+1:]
	}
	return url
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func setNodeText(n *html.Node, text string) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
