package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCounterReset(t *testing.T) {
	tests := []struct {
		input string
		want  map[string]int
	}{
		{"none", map[string]int{}},
		{"", map[string]int{}},
		{"list-item", map[string]int{"list-item": 0}},
		{"list-item 4", map[string]int{"list-item": 4}},
		{"a 2 b", map[string]int{"a": 2, "b": 0}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseCounterReset(tt.input)); diff != "" {
			t.Errorf("parseCounterReset(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestParseCounterIncrement(t *testing.T) {
	want := map[string]int{"list-item": 1, "section": -2}
	if diff := cmp.Diff(want, parseCounterIncrement("list-item section -2")); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCounterScopes(t *testing.T) {
	le := NewLayoutEngine(100, 100, WithMetrics(fixedMetrics{}))

	le.counterIncrement("x", 1)
	if got := le.counterValue("x"); got != 1 {
		t.Errorf("implicit counter = %d, want 1", got)
	}

	le.counterReset("x", 10)
	le.counterIncrement("x", 2)
	if got := le.counterValue("x"); got != 12 {
		t.Errorf("nested counter = %d, want 12", got)
	}

	le.counterPop("x")
	if got := le.counterValue("x"); got != 1 {
		t.Errorf("outer counter after pop = %d, want 1", got)
	}
	le.counterPop("x")
	le.counterPop("x")
	if got := le.counterValue("x"); got != 0 {
		t.Errorf("missing counter = %d, want 0", got)
	}
}
