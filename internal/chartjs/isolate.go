package chartjs

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

// BuildInitializer generates the per-slide registration script. Each
// fragment becomes a render function executing in its own closure: the
// DOM lookups are rebound to the __canvas parameter and the Chart
// identifier resolves to the runtime's capturing proxy, so locally
// declared names cannot collide across canvases or slides and the
// constructed instance lands in an explicit result slot.
//
// A fragment that does not compile (for example an unterminated block
// the partitioner returned as-is) is registered without a render
// function; the runtime draws its placeholder instead.
func BuildInitializer(slideID string, fragments []Fragment) string {
	var entries []string
	for _, frag := range fragments {
		body := Rebind(frag.Source())
		if err := validateFragment(body); err != nil {
			entries = append(entries, fmt.Sprintf(
				"    { canvasId: %q, render: null }", frag.CanvasID))
			continue
		}
		entries = append(entries, fmt.Sprintf(
			"    { canvasId: %q, render: function (__canvas, Chart) {\n%s\n    } }",
			frag.CanvasID, indent(body, "      ")))
	}

	return fmt.Sprintf(`(function () {
  'use strict';
  window.OffdeckRuntime.register(%q, [
%s
  ]);
})();`, slideID, strings.Join(entries, ",\n"))
}

// validateFragment compiles the fragment body inside the same function
// shape the generated script uses.
func validateFragment(body string) error {
	src := "(function (__canvas, Chart) {\n" + body + "\n})"
	_, err := goja.Compile("fragment.js", src, false)
	return err
}

// ValidateScript compiles a whole generated script; the assembler uses
// it as a final guard before embedding.
func ValidateScript(name, src string) error {
	if _, err := goja.Compile(name, src, false); err != nil {
		return fmt.Errorf("generated script %s does not compile: %w", name, err)
	}
	return nil
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
