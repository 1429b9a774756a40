package assemble

import (
	"strings"
	"testing"
)

func TestScopeCSSPrefixesSelectors(t *testing.T) {
	css := ".title { color: red; }\nh1 { font-size: 2em; }"
	got := ScopeCSS(css, "slide-0-abcd1234")

	for _, want := range []string{
		"#slide-0-abcd1234 .title {",
		"#slide-0-abcd1234 h1 {",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestScopeCSSCommaList(t *testing.T) {
	got := ScopeCSS("h1, .lead , p { margin: 0; }", "slide-1-00aa00aa")

	for _, want := range []string{
		"#slide-1-00aa00aa h1",
		"#slide-1-00aa00aa .lead",
		"#slide-1-00aa00aa p",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestScopeCSSLeavesAtRulesUnprefixed(t *testing.T) {
	css := `@import url('extra.css');
@media (max-width: 600px) {
  .title { font-size: 1em; }
}
@keyframes pulse {
  from { opacity: 0; }
  to { opacity: 1; }
}
.after { color: blue; }`
	got := ScopeCSS(css, "slide-2-beefbeef")

	if !strings.Contains(got, "@import url('extra.css');") {
		t.Error("@import statement was rewritten")
	}
	if !strings.Contains(got, "@media (max-width: 600px) {\n  .title { font-size: 1em; }\n}") {
		t.Errorf("@media block was not passed through intact:\n%s", got)
	}
	if !strings.Contains(got, "@keyframes pulse") || strings.Contains(got, "#slide-2-beefbeef from") {
		t.Error("@keyframes body must stay unprefixed")
	}
	if !strings.Contains(got, "#slide-2-beefbeef .after {") {
		t.Error("rule after at-rules lost its prefix")
	}
}

func TestScopeCSSKeepsComments(t *testing.T) {
	got := ScopeCSS("/* theme */ .x { color: red; }", "slide-3-cafecafe")
	if !strings.Contains(got, "/* theme */") {
		t.Error("comment dropped")
	}
	if !strings.Contains(got, "#slide-3-cafecafe .x {") {
		t.Error("rule after comment not prefixed")
	}
}

func TestScopeCSSUnterminatedBlock(t *testing.T) {
	got := ScopeCSS(".broken { color: red;", "slide-4-d00dd00d")
	if !strings.Contains(got, "#slide-4-d00dd00d .broken") {
		t.Errorf("got %q", got)
	}
}
