package css

import (
	"strconv"
	"strings"
)

type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	if s == nil {
		return "", false
	}
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// unitScale converts a length unit to points.
var unitScale = map[string]float64{
	"pt": 1,
	"px": 0.75,
	"in": 72,
	"cm": 72 / 2.54,
	"mm": 72 / 25.4,
}

// ParseLength parses a length into points (e.g., "12pt", "16px" or "12").
// Bare numbers are taken as points.
func ParseLength(val string) (float64, bool) {
	val = strings.ToLower(strings.TrimSpace(val))
	scale := 1.0
	for unit, s := range unitScale {
		if strings.HasSuffix(val, unit) {
			val = strings.TrimSuffix(val, unit)
			scale = s
			break
		}
	}
	num, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 0, false
	}
	return num * scale, true
}

// BoxEdge represents the four sides of a box (top, right, bottom, left)
type BoxEdge struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// GetMargin returns the margin values for all four sides
func (s *Style) GetMargin() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("margin-top"),
		Right:  s.getLengthOrZero("margin-right"),
		Bottom: s.getLengthOrZero("margin-bottom"),
		Left:   s.getLengthOrZero("margin-left"),
	}
}

// GetPadding returns the padding values for all four sides
func (s *Style) GetPadding() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("padding-top"),
		Right:  s.getLengthOrZero("padding-right"),
		Bottom: s.getLengthOrZero("padding-bottom"),
		Left:   s.getLengthOrZero("padding-left"),
	}
}

func (s *Style) getLengthOrZero(property string) float64 {
	val, ok := s.GetLength(property)
	if !ok {
		return 0
	}
	return val
}

func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	for _, decl := range splitDeclarations(styleAttr) {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		property := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(parts[1])

		expandShorthand(style, property, value)
	}
	return style
}

// splitDeclarations splits a style attribute on the semicolons that sit
// outside parentheses and quotes, so url(data:image/png;base64,...) stays
// in one piece.
func splitDeclarations(s string) []string {
	var decls []string
	depth := 0
	var quote rune
	start := 0
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == ';' && depth == 0:
			decls = append(decls, s[start:i])
			start = i + 1
		}
	}
	return append(decls, s[start:])
}

// expandShorthand expands shorthand CSS properties into individual properties
func expandShorthand(style *Style, property, value string) {
	switch property {
	case "margin":
		expandBoxProperty(style, "margin", value)
	case "padding":
		expandBoxProperty(style, "padding", value)
	case "list-style":
		expandListStyle(style, value)
	default:
		style.Set(property, value)
	}
}

// expandBoxProperty expands margin/padding shorthand
// Supports: "10pt" (all), "10pt 20pt" (vertical horizontal),
//           "10pt 20pt 30pt" (top h bottom), "10pt 20pt 30pt 40pt" (t r b l)
func expandBoxProperty(style *Style, prefix, value string) {
	parts := strings.Fields(value)

	switch len(parts) {
	case 1:
		style.Set(prefix+"-top", parts[0])
		style.Set(prefix+"-right", parts[0])
		style.Set(prefix+"-bottom", parts[0])
		style.Set(prefix+"-left", parts[0])
	case 2:
		style.Set(prefix+"-top", parts[0])
		style.Set(prefix+"-bottom", parts[0])
		style.Set(prefix+"-right", parts[1])
		style.Set(prefix+"-left", parts[1])
	case 3:
		style.Set(prefix+"-top", parts[0])
		style.Set(prefix+"-right", parts[1])
		style.Set(prefix+"-left", parts[1])
		style.Set(prefix+"-bottom", parts[2])
	case 4:
		style.Set(prefix+"-top", parts[0])
		style.Set(prefix+"-right", parts[1])
		style.Set(prefix+"-bottom", parts[2])
		style.Set(prefix+"-left", parts[3])
	}
}

// expandListStyle expands the list-style shorthand
// Format: "square inside" or "url(dot.png) disc"
func expandListStyle(style *Style, value string) {
	for _, part := range strings.Fields(value) {
		switch {
		case strings.HasPrefix(part, "url("):
			style.Set("list-style-image", part)
		case part == "inside" || part == "outside":
			style.Set("list-style-position", part)
		default:
			style.Set("list-style-type", part)
		}
	}
}

// GetFontSize returns the font-size in points (default: 12pt)
func (s *Style) GetFontSize() float64 {
	if size, ok := s.GetLength("font-size"); ok {
		return size
	}
	return 12.0
}

// GetFontFamily returns the font-family value (default: serif)
func (s *Style) GetFontFamily() string {
	if family, ok := s.Get("font-family"); ok && strings.TrimSpace(family) != "" {
		return strings.TrimSpace(family)
	}
	return "serif"
}

// GetLineHeight returns the line-height in points (default: 1.2 * font-size)
func (s *Style) GetLineHeight() float64 {
	fontSize := s.GetFontSize()
	lh, ok := s.Get("line-height")
	if !ok {
		return fontSize * 1.2
	}
	lh = strings.TrimSpace(lh)
	if lh == "normal" {
		return fontSize * 1.2
	}
	if strings.HasSuffix(lh, "%") {
		if pct, err := strconv.ParseFloat(strings.TrimSuffix(lh, "%"), 64); err == nil {
			return fontSize * pct / 100
		}
		return fontSize * 1.2
	}
	// A unitless number is a multiplier of the font size.
	if mult, err := strconv.ParseFloat(lh, 64); err == nil {
		return fontSize * mult
	}
	if length, ok := ParseLength(lh); ok {
		return length
	}
	return fontSize * 1.2
}

// GetOpacity returns the opacity clamped to [0, 1] (default: 1)
func (s *Style) GetOpacity() float64 {
	val, ok := s.Get("opacity")
	if !ok {
		return 1.0
	}
	o, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return 1.0
	}
	if o < 0 {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}

// FloatType represents the float property value
type FloatType string

const (
	FloatNone  FloatType = "none"
	FloatLeft  FloatType = "left"
	FloatRight FloatType = "right"
)

// GetFloat returns the float value (default: none)
func (s *Style) GetFloat() FloatType {
	if floatVal, ok := s.Get("float"); ok {
		switch strings.ToLower(strings.TrimSpace(floatVal)) {
		case "left":
			return FloatLeft
		case "right":
			return FloatRight
		}
	}
	return FloatNone
}

// ClearType represents the clear property value
type ClearType string

const (
	ClearNone  ClearType = "none"
	ClearLeft  ClearType = "left"
	ClearRight ClearType = "right"
	ClearBoth  ClearType = "both"
)

// GetClear returns the clear value (default: none)
func (s *Style) GetClear() ClearType {
	if clearVal, ok := s.Get("clear"); ok {
		switch strings.ToLower(strings.TrimSpace(clearVal)) {
		case "left":
			return ClearLeft
		case "right":
			return ClearRight
		case "both":
			return ClearBoth
		}
	}
	return ClearNone
}
