package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"folio/pkg/text"
)

// LayoutEngine pours a document's blocks into line boxes on a single page,
// tracking floats and list counters for one pass at a time.
type LayoutEngine struct {
	page struct {
		width  float64
		height float64
	}
	margin           float64
	metrics          text.Metrics
	logger           *log.Logger
	maxFloatAttempts int

	// CSS Counters support
	counters map[string][]int // Counter name -> stack of values (for nested scopes)
}

// Option configures a LayoutEngine.
type Option func(*LayoutEngine)

// WithMetrics sets the font-metrics service used to measure words.
func WithMetrics(m text.Metrics) Option {
	return func(le *LayoutEngine) { le.metrics = m }
}

// WithLogger sets the logger for layout tracing.
func WithLogger(l *log.Logger) Option {
	return func(le *LayoutEngine) {
		if l != nil {
			le.logger = l
		}
	}
}

// WithMargin sets the page margin on every side.
func WithMargin(m float64) Option {
	return func(le *LayoutEngine) { le.margin = m }
}

// WithFloatAttemptLimit bounds float applications per pass.
func WithFloatAttemptLimit(n int) Option {
	return func(le *LayoutEngine) { le.maxFloatAttempts = n }
}

func NewLayoutEngine(pageWidth, pageHeight float64, opts ...Option) *LayoutEngine {
	le := &LayoutEngine{
		logger:           log.New(io.Discard),
		maxFloatAttempts: DefaultMaxFloatAttempts,
		counters:         make(map[string][]int),
	}
	le.page.width = pageWidth
	le.page.height = pageHeight
	for _, opt := range opts {
		opt(le)
	}
	if le.metrics == nil {
		le.metrics = text.NewFontMetrics(text.DefaultFontConfig())
	}
	return le
}

// newPass starts a fresh layout pass.
func (le *LayoutEngine) newPass() *Pass {
	return NewPass(
		WithMaxFloatAttempts(le.maxFloatAttempts),
		WithPassLogger(le.logger),
	)
}
