package slides

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const twoSlides = `<!DOCTYPE html>
<html lang="en">
<head><title>First</title></head>
<body><h1>One</h1></body>
</html>
<!DOCTYPE html>
<html lang="en">
<head><title>Second</title></head>
<body><h1>Two</h1></body>
</html>`

func TestSplitOnDoctypePrologue(t *testing.T) {
	got, err := Split(twoSlides)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("slides = %d, want 2", len(got))
	}
	if !strings.Contains(got[0], "First") || strings.Contains(got[0], "Second") {
		t.Errorf("slide 0 content wrong: %s", got[0])
	}
	if !strings.Contains(got[1], "Second") {
		t.Errorf("slide 1 content wrong: %s", got[1])
	}
}

func TestSplitFallsBackToRootTag(t *testing.T) {
	in := `<html><body>a</body></html><html><body>b</body></html>`
	got, err := Split(in)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("slides = %d, want 2", len(got))
	}
}

func TestSplitFallsBackToHeadings(t *testing.T) {
	in := `<h1>Intro</h1><p>first</p><h1>Detail</h1><p>second</p>`
	got, err := Split(in)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("slides = %d, want 2", len(got))
	}
	if !strings.Contains(got[0], "<html>") {
		t.Error("heading sections should be wrapped into documents")
	}
	if !strings.Contains(got[1], "Detail") || strings.Contains(got[1], "Intro") {
		t.Errorf("section split contaminated: %s", got[1])
	}
}

func TestSplitClosesUnterminatedDocument(t *testing.T) {
	got, err := Split(`<html><body>only`)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(got) != 1 || !strings.Contains(strings.ToLower(got[0]), "</html>") {
		t.Errorf("unterminated slide not closed: %q", got)
	}
}

func TestSplitNoSlides(t *testing.T) {
	if _, err := Split("<p>just a paragraph</p>"); err != ErrNoSlides {
		t.Errorf("err = %v, want ErrNoSlides", err)
	}
}

func TestDeckTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<html><head><title>My Deck</title></head><body><h1>H</h1></body></html>", "My Deck"},
		{"<html><head></head><body><h1>From H1</h1></body></html>", "From H1"},
		{"<html><head></head><body><h2>From H2</h2></body></html>", "From H2"},
		{"<html><head></head><body><p>nothing</p></body></html>", DefaultTitle},
	}
	for _, tc := range cases {
		if got := DeckTitle(tc.in); got != tc.want {
			t.Errorf("DeckTitle = %q, want %q", got, tc.want)
		}
	}
}

func TestDemote(t *testing.T) {
	doc, err := Parse(0, "<html><head><style>h1{}</style></head><body class=\"dark\"><h1>x</h1></body></html>")
	if err != nil {
		t.Fatal(err)
	}
	doc.ContainerID = "slide-0-abcd1234"
	doc.Demote()

	out, err := doc.Render()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "<head") || strings.Contains(out, "<body") {
		t.Errorf("head/body not demoted: %s", out)
	}
	if !strings.Contains(out, `id="slide-0-abcd1234"`) {
		t.Error("container id missing")
	}
	if !strings.Contains(out, "deck-slide") || !strings.Contains(out, "slide-head") {
		t.Error("container classes missing")
	}
	if !strings.Contains(out, `class="dark slide-body"`) {
		t.Errorf("existing body class lost: %s", out)
	}
	if !strings.Contains(out, "<style>h1{}</style>") {
		t.Error("styles inside demoted head lost")
	}
}

func TestWalkAndText(t *testing.T) {
	root, _ := html.Parse(strings.NewReader("<html><body><p>a <b>b</b></p></body></html>"))
	if got := Text(root); got != "a b" {
		t.Errorf("Text = %q, want %q", got, "a b")
	}
}
