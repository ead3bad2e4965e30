package layout

import (
	"fmt"
	"strings"

	"folio/pkg/css"
)

// LineBox is one visual line of inline content inside a block
// (CSS 2.1 §9.4.2). Left and Right hold the room taken by floats that
// intrude into the line, so Width is the line's full horizontal footprint.
type LineBox struct {
	Y     float64
	W     float64 // Width of the content placed so far
	H     float64
	Left  float64
	Right float64
	WC    int // Word count

	Tallest Frame
	BR      bool // Line ended by a forced break

	block   Block
	pass    *Pass
	frames  []Frame
	applied map[string]bool
}

// NewLineBox creates the line at y inside block and resolves float
// intrusion for it against the pass's registry.
func NewLineBox(pass *Pass, block Block, y float64) *LineBox {
	lb := &LineBox{
		Y:       y,
		block:   block,
		pass:    pass,
		applied: make(map[string]bool),
	}
	lb.ResolveFloats()
	return lb
}

// ResolveFloats adds the margin width of each active float that still
// overlaps the line to Left or Right. Floats that no longer overlap are
// retired from the registry for the rest of the pass. A float that would
// overflow the containing block on this line is pushed to the next one.
//
// Calling it again is safe: floats already applied to the line are skipped.
func (lb *LineBox) ResolveFloats() {
	if lb.pass == nil || lb.block == nil || !lb.block.Reflowable() {
		return
	}
	reg := lb.pass.Floats
	blockX, _ := lb.block.Position()
	blockW := lb.block.MarginWidth()

	var cbWidth float64
	var retire []string
	for _, f := range reg.Floats() {
		if lb.applied[f.ID] {
			continue
		}
		if cbWidth == 0 {
			cbWidth = f.ContainingWidth
		}

		lineW := lb.Width()
		if !f.NextLine && cbWidth <= lineW+f.MarginWidth && cbWidth > lineW {
			f.NextLine = true
			lb.pass.logger.Debug("float deferred to next line", "id", f.ID, "line_y", lb.Y)
			continue
		}

		if lb.pass.attempt() && f.Y+f.MarginHeight > lb.Y && blockX+blockW > f.X {
			if f.Side == css.FloatLeft {
				lb.Left += f.MarginWidth
			} else {
				lb.Right += f.MarginWidth
			}
			lb.applied[f.ID] = true
			continue
		}
		retire = append(retire, f.ID)
	}

	for _, id := range retire {
		if reg.Remove(id) {
			lb.pass.logger.Debug("float retired", "id", id, "line_y", lb.Y)
		}
	}
}

// Width returns the line's footprint including float intrusion.
func (lb *LineBox) Width() float64 {
	return lb.Left + lb.W + lb.Right
}

// AddFrame appends f to the line. The caller is responsible for updating
// W, H and WC.
func (lb *LineBox) AddFrame(f Frame) {
	lb.frames = append(lb.frames, f)
}

func (lb *LineBox) Frames() []Frame { return lb.frames }

func (lb *LineBox) Block() Block { return lb.block }

// Applied reports whether the float with the given id intrudes into this
// line.
func (lb *LineBox) Applied(id string) bool { return lb.applied[id] }

func (lb *LineBox) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "wc: %d\n", lb.WC)
	fmt.Fprintf(&b, "y: %g\n", lb.Y)
	fmt.Fprintf(&b, "w: %g\n", lb.W)
	fmt.Fprintf(&b, "h: %g\n", lb.H)
	fmt.Fprintf(&b, "left: %g\n", lb.Left)
	fmt.Fprintf(&b, "right: %g\n", lb.Right)
	fmt.Fprintf(&b, "br: %t\n", lb.BR)
	fmt.Fprintf(&b, "%d frames\n", len(lb.frames))
	return b.String()
}
