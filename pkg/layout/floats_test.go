package layout

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"folio/pkg/css"
)

func floatIDs(fs []*Floating) []string {
	ids := make([]string, len(fs))
	for i, f := range fs {
		ids[i] = f.ID
	}
	return ids
}

func TestFloatRegistry_RegistrationOrder(t *testing.T) {
	r := NewFloatRegistry()
	for _, id := range []string{"c", "a", "b"} {
		if err := r.Register(&Floating{ID: id}); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, floatIDs(r.Floats())); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestFloatRegistry_RemoveKeepsSnapshot(t *testing.T) {
	r := NewFloatRegistry()
	for _, id := range []string{"a", "b", "c"} {
		_ = r.Register(&Floating{ID: id})
	}
	snapshot := r.Floats()

	if !r.Remove("b") {
		t.Fatal("expected b removed")
	}
	if r.Remove("b") {
		t.Error("expected second removal to report false")
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, floatIDs(snapshot)); diff != "" {
		t.Errorf("snapshot disturbed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "c"}, floatIDs(r.Floats())); diff != "" {
		t.Errorf("registry mismatch (-want +got):\n%s", diff)
	}
	if _, ok := r.Get("b"); ok {
		t.Error("expected b gone")
	}
}

func TestFloatRegistry_RetiredIDsNeverReappear(t *testing.T) {
	r := NewFloatRegistry()
	_ = r.Register(&Floating{ID: "a"})

	if err := r.Register(&Floating{ID: "a"}); !errors.Is(err, ErrDuplicateFloat) {
		t.Errorf("expected ErrDuplicateFloat, got %v", err)
	}

	r.Remove("a")
	if err := r.Register(&Floating{ID: "a"}); !errors.Is(err, ErrFloatRetired) {
		t.Errorf("expected ErrFloatRetired, got %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("expected empty registry, got %d", r.Len())
	}
}

func TestFloatRegistry_Bottom(t *testing.T) {
	r := NewFloatRegistry()
	_ = r.Register(&Floating{ID: "l", Side: css.FloatLeft, Y: 0, MarginHeight: 40})
	_ = r.Register(&Floating{ID: "r", Side: css.FloatRight, Y: 10, MarginHeight: 60})

	tests := []struct {
		clear css.ClearType
		want  float64
	}{
		{css.ClearNone, 5},
		{css.ClearLeft, 40},
		{css.ClearRight, 70},
		{css.ClearBoth, 70},
	}
	for _, tt := range tests {
		if got := r.Bottom(tt.clear, 5); got != tt.want {
			t.Errorf("Bottom(%s) = %f, want %f", tt.clear, got, tt.want)
		}
	}
	if got := r.Bottom(css.ClearBoth, 100); got != 100 {
		t.Errorf("expected y when floats are above, got %f", got)
	}
}

func TestFloatRegistry_Intrusion(t *testing.T) {
	r := NewFloatRegistry()
	_ = r.Register(&Floating{ID: "l1", Side: css.FloatLeft, MarginWidth: 50, Y: 0, MarginHeight: 20})
	_ = r.Register(&Floating{ID: "l2", Side: css.FloatLeft, MarginWidth: 30, Y: 0, MarginHeight: 10})
	_ = r.Register(&Floating{ID: "r", Side: css.FloatRight, MarginWidth: 70, Y: 5, MarginHeight: 20})

	left, right := r.Intrusion(0)
	if left != 80 || right != 0 {
		t.Errorf("at 0: got (%f, %f), want (80, 0)", left, right)
	}
	left, right = r.Intrusion(15)
	if left != 50 || right != 70 {
		t.Errorf("at 15: got (%f, %f), want (50, 70)", left, right)
	}
}
