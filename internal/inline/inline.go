// Package inline rewrites a slide's document tree, replacing external
// stylesheet and script references with the fetched content. It works
// against an already-resolved URL→record mapping and performs no network
// access of its own.
package inline

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/offdeck/offdeck/internal/resource"
	"github.com/offdeck/offdeck/internal/slides"
)

// CollectURLs returns the eligible external references in the document:
// <link href>, <script src>, and @import targets inside inline styles.
func CollectURLs(root *html.Node, eligible func(string) bool) []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(u string) {
		if u == "" || seen[u] || !eligible(u) {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	}

	slides.Walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.DataAtom {
		case atom.Link:
			add(slides.Attr(n, "href"))
		case atom.Script:
			add(slides.Attr(n, "src"))
		case atom.Style:
			for _, u := range importURLs(nodeText(n)) {
				add(u)
			}
		}
	})
	return urls
}

// Embed mutates the tree in place: eligible stylesheet links become
// literal <style> text, external scripts become inline script text with
// the src attribute removed, and @import statements referencing a
// fetched URL are replaced with the stylesheet body. Each rewritten node
// keeps the original URL in a data-original-url attribute.
func Embed(root *html.Node, records map[string]*resource.Record) {
	var relink []*html.Node

	slides.Walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.DataAtom {
		case atom.Link:
			href := slides.Attr(n, "href")
			if rec, ok := records[href]; ok && rec.Kind == resource.KindStyle {
				relink = append(relink, n)
			}
		case atom.Script:
			src := slides.Attr(n, "src")
			if rec, ok := records[src]; ok && rec.Kind == resource.KindScript {
				removeAttr(n, "src")
				setNodeText(n, rec.Text())
				n.Attr = append(n.Attr, html.Attribute{Key: "data-original-url", Val: src})
			}
		case atom.Style:
			if css := rewriteImports(nodeText(n), records); css != nodeText(n) {
				setNodeText(n, css)
			}
		}
	})

	// Replace collected <link> nodes after the walk so sibling pointers
	// stay stable during traversal.
	for _, link := range relink {
		href := slides.Attr(link, "href")
		rec := records[href]
		style := &html.Node{
			Type:     html.ElementNode,
			Data:     "style",
			DataAtom: atom.Style,
			Attr:     []html.Attribute{{Key: "data-original-url", Val: href}},
		}
		style.AppendChild(&html.Node{Type: html.TextNode, Data: rec.Text()})
		link.Parent.InsertBefore(style, link)
		link.Parent.RemoveChild(link)
	}
}

// importURLs extracts @import url(...) targets, tolerating single,
// double, and absent quotes.
func importURLs(css string) []string {
	var urls []string
	rest := css
	for {
		i := strings.Index(rest, "@import")
		if i < 0 {
			return urls
		}
		rest = rest[i+len("@import"):]
		open := strings.Index(rest, "(")
		end := strings.Index(rest, ")")
		if open < 0 || end < open {
			continue
		}
		u := strings.Trim(strings.TrimSpace(rest[open+1:end]), `'"`)
		if u != "" {
			urls = append(urls, u)
		}
		rest = rest[end:]
	}
}

// rewriteImports replaces @import statements whose target was fetched
// with the literal stylesheet text.
func rewriteImports(css string, records map[string]*resource.Record) string {
	for url, rec := range records {
		if rec.Kind != resource.KindStyle || !strings.Contains(css, url) {
			continue
		}
		for _, form := range []string{
			fmt.Sprintf("@import url('%s');", url),
			fmt.Sprintf(`@import url("%s");`, url),
			fmt.Sprintf("@import url(%s);", url),
			fmt.Sprintf("@import url('%s')", url),
			fmt.Sprintf(`@import url("%s")`, url),
			fmt.Sprintf("@import url(%s)", url),
		} {
			css = strings.ReplaceAll(css, form, rec.Text())
		}
	}
	return css
}

// nodeText returns the immediate text content of an element.
func nodeText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// setNodeText replaces an element's children with one text node.
func setNodeText(n *html.Node, text string) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}
