package css

import (
	"strconv"
	"strings"
)

type Color struct {
	R, G, B uint8
}

var namedColors = map[string]Color{
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"white":   {255, 255, 255},
	"black":   {0, 0, 0},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"pink":    {255, 192, 203},
	"brown":   {165, 42, 42},
	"lime":    {0, 255, 0},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
	"silver":  {192, 192, 192},
}

// ParseColor parses a named color or a #rgb / #rrggbb hex color.
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if strings.HasPrefix(colorStr, "#") {
		return parseHexColor(colorStr[1:])
	}
	color, ok := namedColors[colorStr]
	return color, ok
}

func parseHexColor(hex string) (Color, bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}

// RGB returns the channels scaled to [0, 1].
func (c Color) RGB() (r, g, b float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0
}

// GetColor returns the text color (default: black)
func (s *Style) GetColor() Color {
	return s.colorOr("color", Color{0, 0, 0})
}

// GetBackgroundColor returns the background color, if one is set.
func (s *Style) GetBackgroundColor() (Color, bool) {
	if colorStr, ok := s.Get("background-color"); ok {
		return ParseColor(colorStr)
	}
	if colorStr, ok := s.Get("background"); ok {
		return ParseColor(colorStr)
	}
	return Color{}, false
}

func (s *Style) colorOr(property string, fallback Color) Color {
	if colorStr, ok := s.Get(property); ok {
		if color, ok := ParseColor(colorStr); ok {
			return color
		}
	}
	return fallback
}
