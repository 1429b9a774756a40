package classify

import "testing"

func TestEligible(t *testing.T) {
	c := New(nil)

	cases := []struct {
		url  string
		want bool
	}{
		{"https://cdnjs.cloudflare.com/ajax/libs/x/1.0/x.min.js", true},
		{"https://cdn.jsdelivr.net/npm/chart.js@4.4.0/dist/chart.umd.js", true},
		{"https://unpkg.com/vue@3/dist/vue.global.js", true},
		{"https://fonts.googleapis.com/css2?family=Inter:wght@400;700", true},
		{"https://fonts.gstatic.com/s/font.woff2", true},
		{"https://code.jquery.com/jquery-3.7.1.min.js", true},
		{"https://fonts.gstatic.com/", false},
		{"https://fonts.gstatic.com", false},
		{"https://fonts.googleapis.com/", false},
		{"https://fonts.gstatic.com/stats/abc", false},
		{"https://example.com/site.css", false},
		{"http://cdnjs.cloudflare.com/ajax/libs/y/2.0/y.css", true},
	}

	for _, tc := range cases {
		if got := c.Eligible(tc.url); got != tc.want {
			t.Errorf("Eligible(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestDenyWinsOverAllow(t *testing.T) {
	// stats URLs live under an allowed host but must still be rejected,
	// even when a user glob would match them.
	c := New([]string{"https://fonts.gstatic.com/**"})
	if c.Eligible("https://fonts.gstatic.com/stats/abc") {
		t.Error("stats URL should stay ineligible despite extra allow glob")
	}
	if !c.Eligible("https://fonts.gstatic.com/l/font.woff2") {
		t.Error("extra allow glob should admit non-denied gstatic paths")
	}
}

func TestExtraAllowGlobs(t *testing.T) {
	c := New([]string{"https://static.example.org/assets/**"})
	if !c.Eligible("https://static.example.org/assets/js/app.js") {
		t.Error("extra allow glob did not match")
	}
	if c.Eligible("https://static.example.org/index.html") {
		t.Error("URL outside the glob should be ineligible")
	}
}
