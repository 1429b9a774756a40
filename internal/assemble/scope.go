package assemble

import "strings"

// ScopeCSS prefixes every top-level selector in css with the slide
// container id so one slide's rules cannot restyle another. Comma lists
// are prefixed per selector. At-rules (@media, @keyframes, @font-face and
// friends) pass through with their bodies untouched; prefixing inside
// them breaks keyframe names and font-face declarations outright, and
// media-wrapped rules still only match inside the container via the
// descendant selectors they carry.
func ScopeCSS(css, containerID string) string {
	prefix := "#" + containerID + " "
	var out strings.Builder

	i := 0
	for i < len(css) {
		rest := css[i:]

		if strings.HasPrefix(rest, "/*") {
			end := strings.Index(rest, "*/")
			if end < 0 {
				out.WriteString(rest)
				break
			}
			out.WriteString(rest[:end+2])
			i += end + 2
			continue
		}

		if isSpace(css[i]) {
			out.WriteByte(css[i])
			i++
			continue
		}

		if css[i] == '@' {
			end := atRuleEnd(css, i)
			out.WriteString(css[i:end])
			i = end
			continue
		}

		brace := strings.IndexByte(rest, '{')
		if brace < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(prefixSelectors(rest[:brace], prefix))
		end := blockEnd(css, i+brace)
		out.WriteString(css[i+brace : end])
		i = end
	}

	return out.String()
}

// prefixSelectors rewrites "a, .b" into "#id a, #id .b".
func prefixSelectors(selectors, prefix string) string {
	parts := strings.Split(selectors, ",")
	for i, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		parts[i] = prefix + trimmed
	}
	return strings.Join(parts, ",\n") + " "
}

// atRuleEnd returns the index just past an at-rule starting at i: past
// the terminating semicolon for statement forms (@import, @charset), or
// past the matching close brace for block forms.
func atRuleEnd(css string, i int) int {
	for j := i; j < len(css); j++ {
		switch css[j] {
		case ';':
			return j + 1
		case '{':
			return blockEnd(css, j)
		}
	}
	return len(css)
}

// blockEnd returns the index just past the brace block opening at i.
func blockEnd(css string, i int) int {
	depth := 0
	for j := i; j < len(css); j++ {
		switch css[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j + 1
			}
		}
	}
	return len(css)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
