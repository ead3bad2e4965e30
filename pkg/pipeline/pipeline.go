// Package pipeline runs the load → layout → paint stages shared by the
// folio command and viewer.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"folio/pkg/config"
	"folio/pkg/document"
	"folio/pkg/images"
	"folio/pkg/layout"
	"folio/pkg/render"
	"folio/pkg/text"
)

// Options configures a pipeline run.
type Options struct {
	Config config.Config
	Logger *log.Logger

	// Fetch loads marker images. Nil reads paths relative to the working
	// directory.
	Fetch images.ImageFetcher
}

// Stats summarizes a run.
type Stats struct {
	LayoutTime    time.Duration
	PaintTime     time.Duration
	Blocks        int
	Markers       int
	FloatAttempts int
}

// Result is a laid-out and painted page.
type Result struct {
	Page     *layout.Page
	Renderer *render.Renderer
	Stats    Stats
}

// Image returns the painted page.
func (r *Result) Image() image.Image {
	return r.Renderer.Image()
}

// RunFile loads the document at path and renders it. Relative image
// references resolve against the document's directory.
func RunFile(ctx context.Context, path string, opts Options) (*Result, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.Fetch == nil {
		opts.Fetch = images.NewFilesystemFetcher(path)
	}
	return Run(ctx, doc, opts)
}

// Run lays out doc and paints it.
func Run(ctx context.Context, doc *document.Document, opts Options) (*Result, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Config

	fonts := text.NewFontMetrics(text.FontConfig{
		Regular:   cfg.Fonts.Regular,
		Monospace: cfg.Fonts.Monospace,
	}, text.WithFontLogger(logger))

	layoutStart := time.Now()
	engine := layout.NewLayoutEngine(cfg.Page.Width, cfg.Page.Height,
		layout.WithMetrics(fonts),
		layout.WithLogger(logger),
		layout.WithMargin(cfg.Page.Margin),
		layout.WithFloatAttemptLimit(cfg.MaxFloatAttempts),
	)
	page := engine.Layout(doc)
	result := &Result{Page: page}
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Blocks = len(page.Blocks)
	result.Stats.Markers = len(page.Markers)
	result.Stats.FloatAttempts = page.FloatAttempts

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paintStart := time.Now()
	width, height := render.PageSize(page)
	result.Renderer = render.NewRenderer(width, height,
		render.WithFonts(fonts),
		render.WithImages(images.NewCache(opts.Fetch)),
		render.WithRendererLogger(logger),
		render.WithMarkerOptions(
			render.WithDPI(cfg.DPI),
			render.WithGeometry(render.Geometry{
				BulletSize:      cfg.Bullet.Size,
				BulletThickness: cfg.Bullet.Thickness,
				BulletDescent:   cfg.Bullet.Descent,
			}),
		),
	)
	result.Renderer.Render(page)
	result.Stats.PaintTime = time.Since(paintStart)

	logger.Debug("pipeline finished",
		"blocks", result.Stats.Blocks,
		"markers", result.Stats.Markers,
		"layout", result.Stats.LayoutTime,
		"paint", result.Stats.PaintTime)
	return result, nil
}
