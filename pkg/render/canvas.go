package render

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"

	"folio/pkg/css"
	"folio/pkg/images"
	"folio/pkg/text"
)

// Canvas is a Surface backed by a gg raster context.
type Canvas struct {
	context *gg.Context
	fonts   *text.FontMetrics
	images  *images.Cache
	logger  *log.Logger
	alpha   float64
}

// NewCanvas creates a white canvas of the given size in pixels. One pixel
// is one point.
func NewCanvas(width, height int, fonts *text.FontMetrics, cache *images.Cache, logger *log.Logger) *Canvas {
	if fonts == nil {
		fonts = text.NewFontMetrics(text.DefaultFontConfig())
	}
	if cache == nil {
		cache = images.NewCache(nil)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Canvas{
		context: gg.NewContext(width, height),
		fonts:   fonts,
		images:  cache,
		logger:  logger,
		alpha:   1,
	}
	c.Clear()
	return c
}

// Clear fills the canvas with white.
func (c *Canvas) Clear() {
	c.context.SetRGB(1, 1, 1)
	c.context.Clear()
}

func (c *Canvas) setColor(col css.Color) {
	r, g, b := col.RGB()
	c.context.SetRGBA(r, g, b, c.alpha)
}

func (c *Canvas) SetOpacity(alpha float64) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	c.alpha = alpha
}

func (c *Canvas) Circle(x, y, r float64, col css.Color, stroke float64, fill bool) {
	c.setColor(col)
	c.context.DrawCircle(x, y, r)
	if fill {
		c.context.Fill()
		return
	}
	c.context.SetLineWidth(stroke)
	c.context.Stroke()
}

func (c *Canvas) FilledRectangle(x, y, w, h float64, col css.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.setColor(col)
	c.context.DrawRectangle(x, y, w, h)
	c.context.Fill()
}

func (c *Canvas) Image(url string, x, y, w, h float64) {
	img, err := c.images.Load(url)
	if err != nil {
		c.logger.Debug("skipping image", "url", url, "err", err)
		return
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 || w <= 0 || h <= 0 {
		return
	}
	if c.alpha < 1 {
		img = fade(img, c.alpha)
	}

	c.context.Push()
	c.context.Translate(x, y)
	c.context.Scale(w/float64(bounds.Dx()), h/float64(bounds.Dy()))
	c.context.DrawImage(img, 0, 0)
	c.context.Pop()
}

func (c *Canvas) Text(x, y float64, s, family string, size float64, col css.Color, spacing float64) {
	face := c.fonts.Face(family, size)
	if face == nil {
		return
	}
	c.context.SetFontFace(face)
	c.setColor(col)

	baseline := y + c.fonts.Ascent(family, size)
	if spacing == 0 {
		c.context.DrawString(s, x, baseline)
		return
	}
	// Extra spacing is applied per space, so draw the runs between them.
	space, _ := c.context.MeasureString(" ")
	for i, run := range strings.Split(s, " ") {
		if i > 0 {
			x += space + spacing
		}
		c.context.DrawString(run, x, baseline)
		w, _ := c.context.MeasureString(run)
		x += w
	}
}

// Raster returns the rendered image.
func (c *Canvas) Raster() image.Image {
	return c.context.Image()
}

func (c *Canvas) SavePNG(filename string) error {
	return c.context.SavePNG(filename)
}

// fade returns a copy of img with its alpha scaled.
func fade(img image.Image, alpha float64) image.Image {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	mask := image.NewUniform(color.Alpha{A: uint8(alpha * 255)})
	draw.DrawMask(out, out.Bounds(), img, bounds.Min, mask, image.Point{}, draw.Over)
	return out
}
