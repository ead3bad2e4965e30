package layout

import (
	"errors"
	"fmt"

	"folio/pkg/css"
)

var (
	// ErrDuplicateFloat is returned when a float id is registered twice.
	ErrDuplicateFloat = errors.New("layout: float already registered")
	// ErrFloatRetired is returned when a retired float id is registered again.
	ErrFloatRetired = errors.New("layout: float already retired")
)

// Floating describes a floated box contending for room in line boxes.
// Dimensions are margin-box dimensions (CSS 2.1 §9.5).
type Floating struct {
	ID           string
	Side         css.FloatType
	MarginWidth  float64
	MarginHeight float64
	X            float64
	Y            float64

	// ContainingWidth is the width of the float's containing block.
	ContainingWidth float64

	// NextLine is set once the float has been pushed off a line it
	// could not fit beside.
	NextLine bool
}

func (f *Floating) String() string {
	return fmt.Sprintf("float %s %s %.1fx%.1f at (%.1f,%.1f)", f.ID, f.Side, f.MarginWidth, f.MarginHeight, f.X, f.Y)
}

// FloatRegistry is the ordered set of floats still able to affect line
// boxes. It is owned by the layout root and only shrinks by retirement.
type FloatRegistry struct {
	order   []*Floating
	byID    map[string]*Floating
	retired map[string]struct{}
}

func NewFloatRegistry() *FloatRegistry {
	return &FloatRegistry{
		byID:    make(map[string]*Floating),
		retired: make(map[string]struct{}),
	}
}

// Register appends f in registration order.
func (r *FloatRegistry) Register(f *Floating) error {
	if _, ok := r.retired[f.ID]; ok {
		return fmt.Errorf("%w: %s", ErrFloatRetired, f.ID)
	}
	if _, ok := r.byID[f.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFloat, f.ID)
	}
	r.order = append(r.order, f)
	r.byID[f.ID] = f
	return nil
}

// Floats returns a snapshot of the active floats in registration order.
// Removing floats does not disturb a snapshot being iterated.
func (r *FloatRegistry) Floats() []*Floating {
	out := make([]*Floating, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the active float with the given id.
func (r *FloatRegistry) Get(id string) (*Floating, bool) {
	f, ok := r.byID[id]
	return f, ok
}

// Remove retires a float. It reports false if id was not active.
func (r *FloatRegistry) Remove(id string) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	r.retired[id] = struct{}{}
	for i, f := range r.order {
		if f.ID == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Retired reports whether id was removed from the registry.
func (r *FloatRegistry) Retired(id string) bool {
	_, ok := r.retired[id]
	return ok
}

func (r *FloatRegistry) Len() int { return len(r.order) }

// Bottom returns the lowest margin edge among active floats on the given
// side (ClearBoth considers both), or y if none reach below it.
func (r *FloatRegistry) Bottom(clear css.ClearType, y float64) float64 {
	maxY := y
	for _, f := range r.order {
		switch clear {
		case css.ClearLeft:
			if f.Side != css.FloatLeft {
				continue
			}
		case css.ClearRight:
			if f.Side != css.FloatRight {
				continue
			}
		case css.ClearBoth:
		default:
			continue
		}
		if bottom := f.Y + f.MarginHeight; bottom > maxY {
			maxY = bottom
		}
	}
	return maxY
}

// Intrusion sums the margin widths of active floats on each side whose
// vertical extent covers y. Used to place new floats beside earlier ones.
func (r *FloatRegistry) Intrusion(y float64) (left, right float64) {
	for _, f := range r.order {
		if y < f.Y || y >= f.Y+f.MarginHeight {
			continue
		}
		if f.Side == css.FloatLeft {
			left += f.MarginWidth
		} else {
			right += f.MarginWidth
		}
	}
	return left, right
}
