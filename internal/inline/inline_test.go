package inline

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/offdeck/offdeck/internal/resource"
)

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func render(t *testing.T, root *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestCollectURLs(t *testing.T) {
	doc := parse(t, `<html><head>
<link rel="stylesheet" href="https://a/x.css">
<script src="https://b/y.js"></script>
<style>@import url('https://c/z.css'); body{}</style>
<link rel="stylesheet" href="https://deny/no.css">
</head><body></body></html>`)

	eligible := func(u string) bool { return !strings.HasPrefix(u, "https://deny/") }
	got := CollectURLs(doc, eligible)
	want := []string{"https://a/x.css", "https://b/y.js", "https://c/z.css"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("url[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEmbedStylesheetLink(t *testing.T) {
	doc := parse(t, `<html><head><link rel="stylesheet" href="https://a/x.css"></head><body></body></html>`)
	records := map[string]*resource.Record{
		"https://a/x.css": {URL: "https://a/x.css", Kind: resource.KindStyle, Content: []byte("h1{color:red}")},
	}
	Embed(doc, records)
	out := render(t, doc)

	if strings.Contains(out, "<link") {
		t.Errorf("link not replaced: %s", out)
	}
	if !strings.Contains(out, "<style") || !strings.Contains(out, "h1{color:red}") {
		t.Errorf("style text missing: %s", out)
	}
	if !strings.Contains(out, `data-original-url="https://a/x.css"`) {
		t.Error("original url annotation missing")
	}
}

func TestEmbedScript(t *testing.T) {
	doc := parse(t, `<html><head><script src="https://b/y.js"></script></head><body></body></html>`)
	records := map[string]*resource.Record{
		"https://b/y.js": {URL: "https://b/y.js", Kind: resource.KindScript, Content: []byte("var y = 2;")},
	}
	Embed(doc, records)
	out := render(t, doc)

	if strings.Contains(out, "src=") {
		t.Errorf("src attribute not removed: %s", out)
	}
	if !strings.Contains(out, "var y = 2;") {
		t.Errorf("script body missing: %s", out)
	}
}

func TestEmbedImportVariants(t *testing.T) {
	for _, form := range []string{
		`@import url('https://c/z.css');`,
		`@import url("https://c/z.css");`,
		`@import url(https://c/z.css);`,
	} {
		doc := parse(t, "<html><head><style>"+form+" body{margin:0}</style></head><body></body></html>")
		records := map[string]*resource.Record{
			"https://c/z.css": {URL: "https://c/z.css", Kind: resource.KindStyle, Content: []byte("p{padding:0}")},
		}
		Embed(doc, records)
		out := render(t, doc)

		if strings.Contains(out, "@import") {
			t.Errorf("%s: import not rewritten: %s", form, out)
		}
		if !strings.Contains(out, "p{padding:0}") || !strings.Contains(out, "body{margin:0}") {
			t.Errorf("%s: stylesheet merge wrong: %s", form, out)
		}
	}
}

func TestEmbedLeavesUnresolvedReferences(t *testing.T) {
	src := `<html><head><link rel="stylesheet" href="https://a/missing.css"></head><body></body></html>`
	doc := parse(t, src)
	Embed(doc, map[string]*resource.Record{})
	out := render(t, doc)
	if !strings.Contains(out, "https://a/missing.css") {
		t.Error("unfetched reference should stay untouched")
	}
}
