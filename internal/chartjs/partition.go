// Package chartjs statically partitions a slide's shared charting script
// into independent per-canvas fragments and generates the replayable
// initializer that runs them in isolated scopes.
//
// The partitioner is a structural heuristic, not a JavaScript parser: it
// assumes the authoring convention of one DOM lookup per chart block with
// bounded nesting. Scripts outside that convention are not guaranteed to
// split correctly.
package chartjs

import (
	"regexp"
	"strings"
)

// Fragment is the subset of a script responsible for initializing one
// canvas-bound chart.
type Fragment struct {
	CanvasID string
	Lines    []string
	// Complete is false when the fragment's end marker was never found;
	// such fragments are kept as-is and fall back to a placeholder if
	// they turn out not to execute.
	Complete bool
}

// Source returns the fragment text.
func (f Fragment) Source() string { return strings.Join(f.Lines, "\n") }

var (
	lookupRe = regexp.MustCompile(`getElementById\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	// closeRe matches the conventional end of a chart constructor call:
	// a line whose trailing content closes a call expression.
	closeRe = regexp.MustCompile(`\}\s*\)\s*;?\s*$`)
	// The lookup rewrites bind fragments to the concrete canvas element,
	// with or without the 2d context chain.
	ctxLookupRe     = regexp.MustCompile(`document\.getElementById\s*\(\s*['"][^'"]+['"]\s*\)\s*\.getContext\s*\(\s*['"]2d['"]\s*\)`)
	elemLookupRe    = regexp.MustCompile(`document\.getElementById\s*\(\s*['"][^'"]+['"]\s*\)`)
	horizontalBarRe = regexp.MustCompile(`(['"])horizontalBar(['"])`)
)

// CanvasIDs returns the distinct canvas ids the script looks up, in
// order of first appearance.
func CanvasIDs(script string) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, m := range lookupRe.FindAllStringSubmatch(script, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			ids = append(ids, m[1])
		}
	}
	return ids
}

// lookupID returns the canvas id a line looks up, or empty.
func lookupID(line string) string {
	if m := lookupRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

// scanState tracks string and template-literal context across lines so
// braces inside string content never count toward balance.
type scanState struct {
	inTemplate bool
	inBlock    bool // block comment
	depth      int
}

// advance consumes one line, updating brace depth.
func (s *scanState) advance(line string) {
	var quote byte // active ' or " on this line
	for i := 0; i < len(line); i++ {
		ch := line[i]

		if s.inBlock {
			if ch == '*' && i+1 < len(line) && line[i+1] == '/' {
				s.inBlock = false
				i++
			}
			continue
		}
		if s.inTemplate {
			switch ch {
			case '\\':
				i++
			case '`':
				s.inTemplate = false
			}
			continue
		}
		if quote != 0 {
			switch ch {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch ch {
		case '\'', '"':
			quote = ch
		case '`':
			s.inTemplate = true
		case '/':
			if i+1 < len(line) {
				switch line[i+1] {
				case '/':
					return // rest of line is a comment
				case '*':
					s.inBlock = true
					i++
				}
			}
		case '{':
			s.depth++
		case '}':
			s.depth--
		}
	}
	// Quote context does not span lines; an unterminated quote is author
	// error and resets at the line break. Template literals do span.
}

// Partition splits a script into per-canvas fragments. A fragment opens
// at the first line looking up a canvas id and closes when brace balance
// returns to its opening level on a line matching the closing call
// pattern, or when a lookup for a different canvas id appears (that line
// starts the next fragment). Scripts without canvas lookups yield no
// fragments.
func Partition(script string) []Fragment {
	script = Compat(script)
	lines := strings.Split(script, "\n")

	var frags []Fragment
	var cur *Fragment
	var state scanState
	startDepth := 0

	closeCurrent := func(complete bool) {
		if cur == nil {
			return
		}
		cur.Complete = complete
		frags = append(frags, *cur)
		cur = nil
	}

	for _, line := range lines {
		id := lookupID(line)

		if cur == nil {
			if id == "" {
				state.advance(line)
				continue
			}
			startDepth = state.depth
			cur = &Fragment{CanvasID: id}
		} else if id != "" && id != cur.CanvasID {
			// A different canvas begins; the in-progress fragment ends
			// without this line.
			closeCurrent(true)
			startDepth = state.depth
			cur = &Fragment{CanvasID: id}
		}

		cur.Lines = append(cur.Lines, line)
		state.advance(line)

		if state.depth <= startDepth && closeRe.MatchString(stripComment(line)) {
			closeCurrent(true)
		}
	}
	closeCurrent(false)

	return frags
}

// Compat applies Chart.js legacy rewrites: the removed horizontalBar
// chart type becomes bar.
func Compat(script string) string {
	return horizontalBarRe.ReplaceAllString(script, "${1}bar${2}")
}

// Rebind replaces the fragment's DOM lookups with the canvas parameter
// of the generated render function.
func Rebind(src string) string {
	src = ctxLookupRe.ReplaceAllString(src, "__canvas.getContext('2d')")
	return elemLookupRe.ReplaceAllString(src, "__canvas")
}

// stripComment removes a trailing line comment for close-pattern tests.
func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}
