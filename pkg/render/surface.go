// Package render paints laid-out pages: float backgrounds, words and list
// markers.
package render

import "folio/pkg/css"

// Surface is the set of painting primitives markers and pages are drawn
// with. Coordinates are points from the top-left of the page.
type Surface interface {
	// Circle draws a circle centred on (x, y). A non-filled circle is
	// stroked with the given line width.
	Circle(x, y, r float64, color css.Color, stroke float64, fill bool)
	FilledRectangle(x, y, w, h float64, color css.Color)
	// Image draws the image at url scaled into the given box.
	Image(url string, x, y, w, h float64)
	// Text draws text with its line top at y. Spacing is added after every
	// space character.
	Text(x, y float64, text, family string, size float64, color css.Color, spacing float64)
	// SetOpacity sets the alpha applied to subsequent drawing.
	SetOpacity(alpha float64)
}
