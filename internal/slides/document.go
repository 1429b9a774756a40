package slides

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is one parsed slide. The tree is owned by the Document until
// the assembler folds it into the final deck.
type Document struct {
	Index       int
	ContainerID string
	Root        *html.Node
}

// Parse builds a Document from one slide's HTML text.
func Parse(index int, raw string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing slide %d: %w", index+1, err)
	}
	return &Document{Index: index, Root: root}, nil
}

// Render serializes the document tree back to HTML text.
func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.Root); err != nil {
		return "", fmt.Errorf("rendering slide %d: %w", d.Index+1, err)
	}
	return buf.String(), nil
}

// Demote turns the slide's document structure into container divs so it
// can live inside the merged deck body: <html> becomes the hidden slide
// container carrying ContainerID, <head> becomes an off-screen
// div.slide-head (its styles still apply), and <body> becomes
// div.slide-body.
func (d *Document) Demote() {
	// The slide no longer stands alone; its doctype must not leak into
	// the merged body.
	for c := d.Root.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.DoctypeNode {
			d.Root.RemoveChild(c)
		}
		c = next
	}

	Walk(d.Root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.DataAtom {
		case atom.Html:
			toDiv(n)
			setAttr(n, "id", d.ContainerID)
			addClass(n, "deck-slide")
			setAttr(n, "style", "display: none;")
		case atom.Head:
			toDiv(n)
			addClass(n, "slide-head")
		case atom.Body:
			toDiv(n)
			addClass(n, "slide-body")
		}
	})
}

// toDiv rewrites an element in place into a <div>.
func toDiv(n *html.Node) {
	n.Data = "div"
	n.DataAtom = atom.Div
	n.Namespace = ""
}

// Walk visits every node in the tree in document order.
func Walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, visit)
	}
}

// Attr returns the value of the named attribute, or empty.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func addClass(n *html.Node, class string) {
	existing := Attr(n, "class")
	for _, c := range strings.Fields(existing) {
		if c == class {
			return
		}
	}
	if existing == "" {
		setAttr(n, "class", class)
		return
	}
	setAttr(n, "class", existing+" "+class)
}

// Text returns the concatenated text content of a node.
func Text(n *html.Node) string {
	var b strings.Builder
	Walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return strings.TrimSpace(b.String())
}
