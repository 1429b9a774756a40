package slides

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DeckTitle extracts the deck title from the first slide: <title> text,
// then the first <h1>, then the first <h2>, then DefaultTitle.
func DeckTitle(firstSlide string) string {
	root, err := html.Parse(strings.NewReader(firstSlide))
	if err != nil {
		return DefaultTitle
	}
	for _, a := range []atom.Atom{atom.Title, atom.H1, atom.H2} {
		if t := firstText(root, a); t != "" {
			return t
		}
	}
	return DefaultTitle
}

// firstText returns the trimmed text of the first element with the given
// atom, or empty.
func firstText(root *html.Node, a atom.Atom) string {
	var found string
	Walk(root, func(n *html.Node) {
		if found != "" || n.Type != html.ElementNode || n.DataAtom != a {
			return
		}
		if t := Text(n); t != "" {
			found = t
		}
	})
	return found
}
