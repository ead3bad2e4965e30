package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"folio/pkg/counter"
	"folio/pkg/css"
	"folio/pkg/text"
)

// Geometry holds bullet proportions as fractions of the font size.
type Geometry struct {
	BulletSize      float64
	BulletThickness float64
	BulletDescent   float64
}

// DefaultGeometry returns the standard bullet proportions.
func DefaultGeometry() Geometry {
	return Geometry{
		BulletSize:      0.35,
		BulletThickness: 0.04,
		BulletDescent:   0.3,
	}
}

// DefaultDPI converts image pixels to points.
const DefaultDPI = 96

// ImageSource reports marker image availability and size.
type ImageSource interface {
	IsBroken(url string) bool
	// NaturalSize returns the image size in device pixels.
	NaturalSize(url string) (width, height int, err error)
}

// ListItem is what the marker renderer needs to know about a list item.
// X is the content start of the item's first line; Y is the marker top.
type ListItem struct {
	ID    string
	Style *css.Style
	X     float64
	Y     float64
	Index int // Running list-item counter value
	Total int // Sibling count, used for leading-zero padding
}

// MarkerType selects how a marker is painted.
type MarkerType int

const (
	MarkerNone MarkerType = iota
	MarkerImage
	MarkerDisc
	MarkerCircle
	MarkerSquare
	MarkerCounter
)

func (t MarkerType) String() string {
	switch t {
	case MarkerImage:
		return "image"
	case MarkerDisc:
		return "disc"
	case MarkerCircle:
		return "circle"
	case MarkerSquare:
		return "square"
	case MarkerCounter:
		return "counter"
	}
	return "none"
}

// Marker describes the marker resolved for one list item.
type Marker struct {
	Type   MarkerType
	Image  string
	System counter.System
	Index  int
	Pad    int

	// Image size in points, set for MarkerImage.
	Width  float64
	Height float64
}

// Text returns the counter text for a MarkerCounter, or "".
func (m Marker) Text() string {
	if m.Type != MarkerCounter {
		return ""
	}
	return counter.Format(m.Index, m.System, m.Pad)
}

func (m Marker) String() string {
	switch m.Type {
	case MarkerImage:
		return fmt.Sprintf("image(%s %gx%g)", m.Image, m.Width, m.Height)
	case MarkerCounter:
		return fmt.Sprintf("counter(%s %q)", m.System, m.Text())
	}
	return m.Type.String()
}

// MarkerRenderer paints list item markers to the left of the item's
// content start.
type MarkerRenderer struct {
	surface  Surface
	metrics  text.Metrics
	images   ImageSource
	geometry Geometry
	dpi      float64
	logger   *log.Logger
}

type MarkerOption func(*MarkerRenderer)

func WithGeometry(g Geometry) MarkerOption {
	return func(r *MarkerRenderer) {
		r.geometry = g
	}
}

func WithDPI(dpi float64) MarkerOption {
	return func(r *MarkerRenderer) {
		if dpi > 0 {
			r.dpi = dpi
		}
	}
}

func WithMarkerLogger(logger *log.Logger) MarkerOption {
	return func(r *MarkerRenderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewMarkerRenderer creates a marker renderer drawing on surface. A nil
// image source treats every marker image as broken.
func NewMarkerRenderer(surface Surface, metrics text.Metrics, images ImageSource, opts ...MarkerOption) *MarkerRenderer {
	r := &MarkerRenderer{
		surface:  surface,
		metrics:  metrics,
		images:   images,
		geometry: DefaultGeometry(),
		dpi:      DefaultDPI,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Describe resolves the marker for item without drawing it. A configured
// image wins when it loads; otherwise list-style-type decides.
func (r *MarkerRenderer) Describe(item ListItem) Marker {
	if url := item.Style.GetListStyleImage(); url != "" {
		if m, ok := r.imageMarker(url); ok {
			return m
		}
		r.logger.Debug("marker image unavailable, using list-style-type", "item", item.ID, "url", url)
	}

	lst := item.Style.GetListStyleType()
	switch lst.Kind {
	case css.MarkerDisc:
		return Marker{Type: MarkerDisc}
	case css.MarkerCircle:
		return Marker{Type: MarkerCircle}
	case css.MarkerSquare:
		return Marker{Type: MarkerSquare}
	case css.MarkerCounter:
		m := Marker{Type: MarkerCounter, System: lst.System, Index: item.Index}
		if lst.System == counter.DecimalLeadingZero {
			m.Pad = len(strconv.Itoa(item.Total))
		}
		return m
	}
	return Marker{Type: MarkerNone}
}

func (r *MarkerRenderer) imageMarker(url string) (Marker, bool) {
	if r.images == nil || r.images.IsBroken(url) {
		return Marker{}, false
	}
	w, h, err := r.images.NaturalSize(url)
	if err != nil {
		return Marker{}, false
	}
	return Marker{
		Type:   MarkerImage,
		Image:  url,
		Width:  float64(w) * 72 / r.dpi,
		Height: float64(h) * 72 / r.dpi,
	}, true
}

// Render draws the marker for item, if any.
func (r *MarkerRenderer) Render(item ListItem) {
	m := r.Describe(item)
	style := item.Style
	fontSize := style.GetFontSize()
	x, y := item.X, item.Y
	g := r.geometry

	switch m.Type {
	case MarkerImage:
		x -= m.Width
		y -= (style.GetLineHeight() - fontSize) / 2
		r.surface.SetOpacity(style.GetOpacity())
		r.surface.Image(m.Image, x, y, m.Width, m.Height)

	case MarkerDisc, MarkerCircle:
		radius := fontSize * g.BulletSize / 2
		x -= fontSize * g.BulletSize / 2
		y += fontSize * (1 - g.BulletDescent) / 2
		r.surface.SetOpacity(style.GetOpacity())
		r.surface.Circle(x, y, radius, style.GetColor(), fontSize*g.BulletThickness, m.Type == MarkerDisc)

	case MarkerSquare:
		side := fontSize * g.BulletSize
		x -= side
		y += fontSize * (1 - g.BulletDescent - g.BulletSize) / 2
		r.surface.SetOpacity(style.GetOpacity())
		r.surface.FilledRectangle(x, y, side, side, style.GetColor())

	case MarkerCounter:
		label := m.Text()
		if strings.TrimSpace(label) == "" {
			return
		}
		family := style.GetFontFamily()
		x -= r.metrics.Measure(label, family, fontSize, 0)
		r.surface.SetOpacity(style.GetOpacity())
		r.surface.Text(x, y, label, family, fontSize, style.GetColor(), 0)
	}
}
