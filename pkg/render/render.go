package render

import (
	"image"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"folio/pkg/css"
	"folio/pkg/images"
	"folio/pkg/layout"
	"folio/pkg/text"
)

// floatFill paints floats that have no background of their own.
var floatFill = css.Color{R: 192, G: 192, B: 192}

// Renderer paints laid-out pages onto a Canvas.
type Renderer struct {
	canvas  *Canvas
	markers *MarkerRenderer
	logger  *log.Logger

	fonts      *text.FontMetrics
	images     *images.Cache
	markerOpts []MarkerOption
}

type RendererOption func(*Renderer)

func WithFonts(fonts *text.FontMetrics) RendererOption {
	return func(r *Renderer) {
		r.fonts = fonts
	}
}

func WithImages(cache *images.Cache) RendererOption {
	return func(r *Renderer) {
		r.images = cache
	}
}

func WithMarkerOptions(opts ...MarkerOption) RendererOption {
	return func(r *Renderer) {
		r.markerOpts = append(r.markerOpts, opts...)
	}
}

func WithRendererLogger(logger *log.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRenderer(width, height int, opts ...RendererOption) *Renderer {
	r := &Renderer{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(r)
	}
	if r.fonts == nil {
		r.fonts = text.NewFontMetrics(text.DefaultFontConfig())
	}
	if r.images == nil {
		r.images = images.NewCache(nil)
	}
	r.canvas = NewCanvas(width, height, r.fonts, r.images, r.logger)
	markerOpts := append([]MarkerOption{WithMarkerLogger(r.logger)}, r.markerOpts...)
	r.markers = NewMarkerRenderer(r.canvas, r.fonts, r.images, markerOpts...)
	return r
}

// PageSize converts a page's point size to whole pixels.
func PageSize(page *layout.Page) (width, height int) {
	return int(math.Ceil(page.Width)), int(math.Ceil(page.Height))
}

// Render paints floats, then words, then list markers.
func (r *Renderer) Render(page *layout.Page) {
	r.canvas.Clear()

	for _, f := range page.Floats {
		bg, ok := f.Style.GetBackgroundColor()
		if !ok {
			bg = floatFill
		}
		r.canvas.SetOpacity(f.Style.GetOpacity())
		r.canvas.FilledRectangle(f.Rect.X, f.Rect.Y, f.Rect.Width, f.Rect.Height, bg)
	}

	for _, w := range page.Words() {
		r.canvas.SetOpacity(w.Style.GetOpacity())
		r.canvas.Text(w.X, w.Y, w.Text, w.Style.GetFontFamily(), w.Style.GetFontSize(), w.Style.GetColor(), 0)
	}

	for _, m := range page.Markers {
		r.markers.Render(ListItem{
			ID:    m.ItemID,
			Style: m.Style,
			X:     m.X,
			Y:     m.Y,
			Index: m.Index,
			Total: m.Total,
		})
	}
	r.canvas.SetOpacity(1)

	r.logger.Debug("page painted", "floats", len(page.Floats), "markers", len(page.Markers))
}

// Image returns the painted page.
func (r *Renderer) Image() image.Image {
	return r.canvas.Raster()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.canvas.SavePNG(filename)
}
