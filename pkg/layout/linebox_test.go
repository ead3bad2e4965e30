package layout

import (
	"strings"
	"testing"

	"folio/pkg/css"
)

type testBlock struct {
	x, y, w float64
	static  bool
}

func (b testBlock) Reflowable() bool         { return !b.static }
func (b testBlock) Position() (x, y float64) { return b.x, b.y }
func (b testBlock) MarginWidth() float64     { return b.w }

func newTestPass(t *testing.T, floats ...*Floating) *Pass {
	t.Helper()
	pass := NewPass()
	for _, f := range floats {
		if err := pass.Floats.Register(f); err != nil {
			t.Fatalf("register %s: %v", f.ID, err)
		}
	}
	return pass
}

func leftFloat(id string, w, h, y float64) *Floating {
	return &Floating{ID: id, Side: css.FloatLeft, MarginWidth: w, MarginHeight: h, Y: y, ContainingWidth: 500}
}

func TestLineBox_NoFloats(t *testing.T) {
	lb := NewLineBox(NewPass(), testBlock{w: 500}, 0)
	lb.W = 120

	if lb.Left != 0 || lb.Right != 0 {
		t.Errorf("expected no intrusion, got left=%f right=%f", lb.Left, lb.Right)
	}
	if lb.Width() != lb.W {
		t.Errorf("expected Width() == W, got %f vs %f", lb.Width(), lb.W)
	}
}

func TestLineBox_LeftAndRightFloats(t *testing.T) {
	right := &Floating{ID: "r", Side: css.FloatRight, MarginWidth: 80, MarginHeight: 50, X: 420, ContainingWidth: 500}
	pass := newTestPass(t, leftFloat("l", 100, 50, 0), right)

	lb := NewLineBox(pass, testBlock{w: 500}, 10)
	if lb.Left != 100 || lb.Right != 80 {
		t.Errorf("expected left=100 right=80, got left=%f right=%f", lb.Left, lb.Right)
	}
	lb.W = 30
	if lb.Width() != 210 {
		t.Errorf("expected Width() = left + w + right = 210, got %f", lb.Width())
	}
	if !lb.Applied("l") || !lb.Applied("r") {
		t.Error("expected both floats recorded as applied")
	}
}

func TestLineBox_FloatAppliedOncePerLine(t *testing.T) {
	pass := newTestPass(t, leftFloat("a", 100, 50, 0))
	lb := NewLineBox(pass, testBlock{w: 500}, 0)

	lb.ResolveFloats()
	lb.ResolveFloats()

	if lb.Left != 100 {
		t.Errorf("expected float counted once, left=%f", lb.Left)
	}
	if pass.Attempts() != 1 {
		t.Errorf("expected one attempt, got %d", pass.Attempts())
	}
}

func TestLineBox_RetiresFloatBelowLine(t *testing.T) {
	pass := newTestPass(t, leftFloat("a", 100, 50, 0))

	first := NewLineBox(pass, testBlock{w: 500}, 20)
	if first.Left != 100 {
		t.Fatalf("expected float applied to first line, left=%f", first.Left)
	}

	second := NewLineBox(pass, testBlock{w: 500}, 50)
	if second.Left != 0 {
		t.Errorf("expected float no longer applied at its bottom edge, left=%f", second.Left)
	}
	if pass.Floats.Len() != 0 || !pass.Floats.Retired("a") {
		t.Fatal("expected float retired")
	}

	// Retirement is permanent even for a line the float would overlap.
	third := NewLineBox(pass, testBlock{w: 500}, 0)
	if third.Left != 0 || third.Applied("a") {
		t.Errorf("expected retired float never reapplied, left=%f", third.Left)
	}
}

func TestLineBox_RetiresFloatOutsideBlock(t *testing.T) {
	f := leftFloat("a", 100, 500, 0)
	f.X = 300
	pass := newTestPass(t, f)

	// Block spans 0..300, float starts at 300.
	lb := NewLineBox(pass, testBlock{w: 300}, 0)
	if lb.Left != 0 {
		t.Errorf("expected no intrusion, left=%f", lb.Left)
	}
	if !pass.Floats.Retired("a") {
		t.Error("expected horizontally disjoint float retired")
	}
}

func TestLineBox_DefersFloatThatCannotFit(t *testing.T) {
	first := leftFloat("a", 300, 100, 0)
	second := leftFloat("b", 250, 100, 0)
	pass := newTestPass(t, first, second)

	line1 := NewLineBox(pass, testBlock{w: 500}, 0)
	if line1.Left != 300 {
		t.Errorf("expected only the first float on line 1, left=%f", line1.Left)
	}
	if line1.Applied("b") || !second.NextLine {
		t.Fatal("expected second float deferred to the next line")
	}
	if pass.Floats.Retired("b") {
		t.Fatal("deferred float must stay registered")
	}

	line2 := NewLineBox(pass, testBlock{w: 500}, 12)
	if line2.Left != 550 {
		t.Errorf("expected both floats on line 2, left=%f", line2.Left)
	}
}

func TestLineBox_ContainingWidthFromFirstFloat(t *testing.T) {
	a := leftFloat("a", 100, 100, 0)
	b := leftFloat("b", 350, 100, 0)
	// b's own containing width would defer it; the first float's 500 wins.
	b.ContainingWidth = 200
	pass := newTestPass(t, a, b)

	lb := NewLineBox(pass, testBlock{w: 500}, 0)
	if lb.Left != 450 || b.NextLine {
		t.Errorf("expected both floats applied, left=%f deferred=%v", lb.Left, b.NextLine)
	}
}

func TestLineBox_StaticBlockIgnoresFloats(t *testing.T) {
	pass := newTestPass(t, leftFloat("a", 100, 10, 0))

	lb := NewLineBox(pass, testBlock{w: 500, static: true}, 100)
	if lb.Left != 0 {
		t.Errorf("expected no intrusion, left=%f", lb.Left)
	}
	if pass.Floats.Len() != 1 {
		t.Error("expected registry untouched for a block without reflow context")
	}
	if pass.Attempts() != 0 {
		t.Errorf("expected no attempts, got %d", pass.Attempts())
	}
}

func TestLineBox_NilPass(t *testing.T) {
	lb := NewLineBox(nil, testBlock{w: 500}, 0)
	if lb.Width() != 0 {
		t.Errorf("expected empty line, got width %f", lb.Width())
	}
}

func TestLineBox_AttemptGuardForceRetires(t *testing.T) {
	pass := NewPass(WithMaxFloatAttempts(DefaultMaxFloatAttempts))
	if err := pass.Floats.Register(leftFloat("tall", 100, 1e9, 0)); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < DefaultMaxFloatAttempts; i++ {
		lb := NewLineBox(pass, testBlock{w: 500}, float64(i))
		if lb.Left != 100 {
			t.Fatalf("line %d: expected float applied, left=%f", i, lb.Left)
		}
	}
	if !pass.Exhausted() {
		t.Fatal("expected guard exhausted after the limit")
	}

	lb := NewLineBox(pass, testBlock{w: 500}, DefaultMaxFloatAttempts)
	if lb.Left != 0 {
		t.Errorf("expected forced retirement, left=%f", lb.Left)
	}
	if !pass.Floats.Retired("tall") {
		t.Error("expected contending float retired once the guard tripped")
	}
	if pass.Attempts() != DefaultMaxFloatAttempts {
		t.Errorf("attempts = %d, want %d", pass.Attempts(), DefaultMaxFloatAttempts)
	}
}

func TestPass_Reset(t *testing.T) {
	pass := NewPass(WithMaxFloatAttempts(1))
	if err := pass.Floats.Register(leftFloat("a", 10, 10, 0)); err != nil {
		t.Fatal(err)
	}
	NewLineBox(pass, testBlock{w: 500}, 0)
	if !pass.Exhausted() {
		t.Fatal("expected limit of one to be exhausted")
	}

	pass.Reset()
	if pass.Exhausted() || pass.Attempts() != 0 || pass.Floats.Len() != 0 {
		t.Error("expected fresh pass state after Reset")
	}
	// Ids retired in the previous document may be used again.
	if err := pass.Floats.Register(leftFloat("a", 10, 10, 0)); err != nil {
		t.Errorf("unexpected error after reset: %v", err)
	}
}

func TestLineBox_AddFrame(t *testing.T) {
	lb := NewLineBox(NewPass(), testBlock{w: 500}, 0)
	lb.AddFrame(&Word{Text: "a", W: 10, H: 12})
	lb.AddFrame(&Word{Text: "b", W: 10, H: 12})

	if len(lb.Frames()) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(lb.Frames()))
	}
	if lb.W != 0 {
		t.Error("AddFrame must not touch W")
	}
	if !strings.Contains(lb.String(), "2 frames") {
		t.Errorf("unexpected dump:\n%s", lb.String())
	}
}
