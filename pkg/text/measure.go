package text

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Metrics measures rendered text.
type Metrics interface {
	// Measure returns the advance width of text set in family at size,
	// with spacing added for every space character.
	Measure(text, family string, size, spacing float64) float64
}

// FontConfig holds paths to font files used for text measurement and rendering.
// Empty paths fall back to the Go fonts bundled with golang.org/x/image.
type FontConfig struct {
	Regular   string
	Monospace string
}

// DefaultFontConfig returns a FontConfig using only the bundled Go fonts.
func DefaultFontConfig() FontConfig {
	return FontConfig{}
}

// FontPath returns the configured font path for a family, or "" when the
// bundled font should be used.
func (fc FontConfig) FontPath(mono bool) string {
	if mono {
		return fc.Monospace
	}
	return fc.Regular
}

type faceKey struct {
	mono bool
	size float64
}

// FontMetrics resolves CSS font families to faces and measures text with
// them. Faces are cached per family class and size.
type FontMetrics struct {
	fonts  FontConfig
	logger *log.Logger

	mu     sync.Mutex
	parsed map[bool]*truetype.Font
	faces  map[faceKey]font.Face
	dc     *gg.Context
}

type MetricsOption func(*FontMetrics)

// WithFontLogger reports configured fonts that fail to load.
func WithFontLogger(logger *log.Logger) MetricsOption {
	return func(m *FontMetrics) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewFontMetrics(fonts FontConfig, opts ...MetricsOption) *FontMetrics {
	m := &FontMetrics{
		fonts:  fonts,
		logger: log.New(io.Discard),
		parsed: make(map[bool]*truetype.Font),
		faces:  make(map[faceKey]font.Face),
		dc:     gg.NewContext(1, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsMonospace reports whether a font-family list asks for a fixed-pitch
// font before any proportional one.
func IsMonospace(family string) bool {
	for _, name := range strings.Split(family, ",") {
		name = strings.ToLower(strings.Trim(strings.TrimSpace(name), `"'`))
		switch {
		case name == "monospace" || strings.Contains(name, "mono") || strings.Contains(name, "courier"):
			return true
		case name == "serif" || name == "sans-serif" || name == "cursive" || name == "fantasy":
			return false
		}
	}
	return false
}

// Face returns the face for family at size.
func (m *FontMetrics) Face(family string, size float64) font.Face {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.face(IsMonospace(family), size)
}

func (m *FontMetrics) face(mono bool, size float64) font.Face {
	key := faceKey{mono: mono, size: size}
	if f, ok := m.faces[key]; ok {
		return f
	}
	ttf := m.font(mono)
	if ttf == nil {
		return nil
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: size})
	m.faces[key] = f
	return f
}

func (m *FontMetrics) font(mono bool) *truetype.Font {
	if f, ok := m.parsed[mono]; ok {
		return f
	}
	var f *truetype.Font
	if path := m.fonts.FontPath(mono); path != "" {
		var err error
		f, err = parseFontFile(path)
		if err != nil {
			// font() runs once per family class, so this warns once.
			m.logger.Warn("font unavailable, using bundled Go font", "path", path, "monospace", mono, "err", err)
		}
	}
	if f == nil {
		data := goregular.TTF
		if mono {
			data = gomono.TTF
		}
		f, _ = truetype.Parse(data)
	}
	m.parsed[mono] = f
	return f
}

func parseFontFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}

// Measure measures the width of text with the given font family and size.
func (m *FontMetrics) Measure(text, family string, size, spacing float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	extra := spacing * float64(strings.Count(text, " "))
	face := m.face(IsMonospace(family), size)
	if face == nil {
		// If font loading fails, return rough estimate
		return float64(len([]rune(text)))*size*0.6 + extra
	}
	m.dc.SetFontFace(face)
	w, _ := m.dc.MeasureString(text)
	return w + extra
}

// Ascent returns the distance from the top of a line to the baseline for
// family at size.
func (m *FontMetrics) Ascent(family string, size float64) float64 {
	face := m.Face(family, size)
	if face == nil {
		return size * 0.8
	}
	return float64(face.Metrics().Ascent) / 64
}
