package layout

import (
	"folio/pkg/css"
)

// Block is the block container that owns a run of line boxes.
type Block interface {
	// Reflowable reports whether the block has a reflow context. Blocks
	// without one never track floats.
	Reflowable() bool
	// Position returns the block's margin-box origin.
	Position() (x, y float64)
	MarginWidth() float64
}

// Frame is an inline-level frame placed on a line.
type Frame interface {
	Width() float64
	Height() float64
}

// Rect represents a rectangular region
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Box is a block container laid out by the engine: a paragraph or one
// list item.
type Box struct {
	ID     string
	Style  *css.Style
	X      float64 // Content-box x
	Y      float64 // Content-box y
	Width  float64 // Content width
	Height float64 // Content height
	Margin css.BoxEdge

	LineBoxes []*LineBox

	// Static boxes have no reflow context and ignore floats.
	Static bool
}

func (b *Box) Reflowable() bool { return !b.Static }

func (b *Box) Position() (x, y float64) {
	return b.X - b.Margin.Left, b.Y - b.Margin.Top
}

func (b *Box) MarginWidth() float64 {
	return b.Margin.Left + b.Width + b.Margin.Right
}

// Word is a measured run of text placed on a line.
type Word struct {
	Text  string
	Style *css.Style
	X     float64 // Absolute x of the word's left edge
	Y     float64 // Top of the line box holding the word
	W     float64
	H     float64
}

func (w *Word) Width() float64  { return w.W }
func (w *Word) Height() float64 { return w.H }

// FloatBox is the painted border box of a float.
type FloatBox struct {
	ID    string
	Side  css.FloatType
	Style *css.Style
	Rect  Rect
}

// MarkerBox records where a list item's marker is painted: X is the
// content start of the item's first line, Y the marker's top.
type MarkerBox struct {
	ItemID string
	Style  *css.Style
	X      float64
	Y      float64
	Index  int // Running list-item counter value
	Total  int // Number of items in the list
}

// Page is the result of laying out one document.
type Page struct {
	Width   float64
	Height  float64
	Floats  []*FloatBox
	Blocks  []*Box
	Markers []*MarkerBox

	// FloatAttempts is the number of float applications the pass granted.
	FloatAttempts int
}

// Words returns every placed word in document order.
func (p *Page) Words() []*Word {
	var words []*Word
	for _, b := range p.Blocks {
		for _, lb := range b.LineBoxes {
			for _, f := range lb.Frames() {
				if w, ok := f.(*Word); ok {
					words = append(words, w)
				}
			}
		}
	}
	return words
}
