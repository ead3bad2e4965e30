package css

import (
	"strings"

	"folio/pkg/counter"
)

// MarkerKind is the shape family selected by list-style-type.
type MarkerKind int

const (
	MarkerNone MarkerKind = iota
	MarkerDisc
	MarkerCircle
	MarkerSquare
	MarkerCounter
)

func (k MarkerKind) String() string {
	switch k {
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

// ListStyleType is a resolved list-style-type. System is only meaningful
// when Kind is MarkerCounter.
type ListStyleType struct {
	Kind   MarkerKind
	System counter.System
}

// ParseListStyleType resolves a list-style-type value. Unknown values
// resolve to MarkerNone and report false.
func ParseListStyleType(value string) (ListStyleType, bool) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "none":
		return ListStyleType{Kind: MarkerNone}, true
	case "disc":
		return ListStyleType{Kind: MarkerDisc}, true
	case "circle":
		return ListStyleType{Kind: MarkerCircle}, true
	case "square":
		return ListStyleType{Kind: MarkerSquare}, true
	}
	if system, ok := counter.ParseSystem(value); ok {
		return ListStyleType{Kind: MarkerCounter, System: system}, true
	}
	return ListStyleType{Kind: MarkerNone}, false
}

// GetListStyleType returns the list-style-type (default: disc)
func (s *Style) GetListStyleType() ListStyleType {
	val, ok := s.Get("list-style-type")
	if !ok {
		return ListStyleType{Kind: MarkerDisc}
	}
	lst, _ := ParseListStyleType(val)
	return lst
}

// GetListStyleImage returns the URL from list-style-image: url(...),
// or "" when none is set.
func (s *Style) GetListStyleImage() string {
	val, ok := s.Get("list-style-image")
	if !ok {
		return ""
	}
	return ParseURL(val)
}

// ParseURL extracts the target of a url(...) value.
func ParseURL(val string) string {
	val = strings.TrimSpace(val)
	if !strings.HasPrefix(val, "url(") || !strings.HasSuffix(val, ")") {
		return ""
	}
	url := strings.TrimSpace(val[4 : len(val)-1])
	return strings.Trim(url, `"'`)
}
