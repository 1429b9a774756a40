package chartjs

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/offdeck/offdeck/internal/slides"
)

// RewriteScripts replaces every inline charting script in the slide with
// its generated isolation wrapper and returns the canvas ids that were
// wired. Scripts without canvas lookups are left untouched. The runtime
// merges repeated registrations for the same slide, so a slide may carry
// several charting script blocks.
func RewriteScripts(doc *slides.Document) []string {
	var canvasIDs []string

	slides.Walk(doc.Root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Script {
			return
		}
		if slides.Attr(n, "src") != "" {
			return
		}
		// Inlined library code is marked with its origin; only
		// slide-authored scripts are partitioned.
		if slides.Attr(n, "data-original-url") != "" {
			return
		}
		text := scriptText(n)
		if !isChartScript(text) {
			return
		}
		frags := Partition(text)
		if len(frags) == 0 {
			return
		}
		for _, f := range frags {
			canvasIDs = append(canvasIDs, f.CanvasID)
		}
		setScriptText(n, BuildInitializer(doc.ContainerID, frags))
	})

	return canvasIDs
}

// isChartScript reports whether a script block follows the charting
// convention: a DOM lookup plus a Chart constructor reference.
func isChartScript(text string) bool {
	return lookupRe.MatchString(text) && strings.Contains(text, "Chart")
}

func scriptText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func setScriptText(n *html.Node, text string) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
