package chartjs

import (
	"strings"
	"testing"

	"github.com/dop251/goja"
)

// collidingScript wires two canvases with identical identifier names;
// re-running it unpartitioned would redeclare ctx and chart.
const collidingScript = `
const ctx = document.getElementById('alpha').getContext('2d');
const chart = new Chart(ctx, {
    type: 'bar',
    data: { labels: ['a'], datasets: [{ data: [1] }] }
});
const ctx2 = document.getElementById('beta').getContext('2d');
const chart2 = new Chart(ctx2, {
    type: 'line',
    data: { labels: ['b'], datasets: [{ data: [2] }] }
});
`

func TestBuildInitializerCompiles(t *testing.T) {
	frags := Partition(collidingScript)
	script := BuildInitializer("slide-0-aabbccdd", frags)
	if err := ValidateScript("init.js", script); err != nil {
		t.Fatalf("generated initializer does not compile: %v\n%s", err, script)
	}
	if !strings.Contains(script, `"slide-0-aabbccdd"`) {
		t.Error("slide id missing from registration")
	}
	if strings.Contains(script, "getElementById") {
		t.Error("DOM lookups must be rebound before embedding")
	}
}

func TestBuildInitializerInvalidFragmentGetsNullRender(t *testing.T) {
	frags := []Fragment{{
		CanvasID: "broken",
		Lines:    []string{"const x = document.getElementById('broken');", "new Chart(x, {"},
	}}
	script := BuildInitializer("slide-1-e1e2e3e4", frags)
	if !strings.Contains(script, `{ canvasId: "broken", render: null }`) {
		t.Errorf("invalid fragment should register without a render function:\n%s", script)
	}
	if err := ValidateScript("init.js", script); err != nil {
		t.Fatalf("placeholder registration must still compile: %v", err)
	}
}

// TestFragmentsExecuteInIsolatedScopes runs the generated registration
// under goja with a stub runtime and executes both render functions.
// Identical const names across fragments must not collide, and each
// constructed chart must land against its own canvas.
func TestFragmentsExecuteInIsolatedScopes(t *testing.T) {
	frags := Partition(collidingScript)
	if len(frags) != 2 {
		t.Fatalf("fragments = %d, want 2", len(frags))
	}
	script := BuildInitializer("slide-2-f00f00f0", frags)

	harness := `
var registered = {};
var window = {
  OffdeckRuntime: {
    register: function (slideId, frags) {
      registered[slideId] = (registered[slideId] || []).concat(frags);
    }
  }
};
` + script + `
var made = [];
function FakeChart(ctx, cfg) {
  made.push({ canvas: ctx.canvasId, type: cfg.type });
}
registered['slide-2-f00f00f0'].forEach(function (f) {
  var canvas = {
    getContext: function () { return { canvasId: f.canvasId }; }
  };
  f.render(canvas, FakeChart);
});
made;
`
	vm := goja.New()
	val, err := vm.RunString(harness)
	if err != nil {
		t.Fatalf("executing generated script: %v\n%s", err, script)
	}

	made := val.Export().([]interface{})
	if len(made) != 2 {
		t.Fatalf("charts made = %d, want 2", len(made))
	}
	first := made[0].(map[string]interface{})
	second := made[1].(map[string]interface{})
	if first["canvas"] != "alpha" || first["type"] != "bar" {
		t.Errorf("first chart = %v", first)
	}
	if second["canvas"] != "beta" || second["type"] != "line" {
		t.Errorf("second chart = %v", second)
	}
}

func TestValidateScriptRejectsGarbage(t *testing.T) {
	if err := ValidateScript("bad.js", "function (  {"); err == nil {
		t.Error("expected compile error")
	}
}
