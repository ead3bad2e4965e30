// Package counter formats list-item counter values for the numbering
// systems a list marker can use.
package counter

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// System is a list numbering system.
type System int

const (
	Decimal System = iota
	DecimalLeadingZero
	LowerAlpha
	UpperAlpha
	LowerRoman
	UpperRoman
	LowerGreek
)

// descriptor drives Format for one numbering system.
type descriptor struct {
	name     string
	aliases  []string
	generate func(n int) string
	upper    bool
	padded   bool
}

var systems = [...]descriptor{
	Decimal:            {name: "decimal", aliases: []string{"1"}, generate: strconv.Itoa},
	DecimalLeadingZero: {name: "decimal-leading-zero", generate: strconv.Itoa, padded: true},
	LowerAlpha:         {name: "lower-alpha", aliases: []string{"lower-latin", "a"}, generate: alpha},
	UpperAlpha:         {name: "upper-alpha", aliases: []string{"upper-latin", "A"}, generate: alpha, upper: true},
	LowerRoman:         {name: "lower-roman", aliases: []string{"i"}, generate: roman},
	UpperRoman:         {name: "upper-roman", aliases: []string{"I"}, generate: roman, upper: true},
	LowerGreek:         {name: "lower-greek", generate: greek},
}

var upper = cases.Upper(language.Und)

// String returns the CSS keyword of the system.
func (s System) String() string {
	if s < 0 || int(s) >= len(systems) {
		return fmt.Sprintf("System(%d)", int(s))
	}
	return systems[s].name
}

// ParseSystem resolves a list-style-type keyword or one of the HTML4
// single-character type aliases ("1", "a", "A", "i", "I").
func ParseSystem(name string) (System, bool) {
	name = strings.TrimSpace(name)
	for i, d := range systems {
		for _, alias := range d.aliases {
			// HTML4 aliases distinguish case: "a" is lower, "A" is upper.
			if name == alias {
				return System(i), true
			}
		}
	}
	lower := strings.ToLower(name)
	for i, d := range systems {
		if lower == d.name {
			return System(i), true
		}
	}
	return 0, false
}

// Format renders n in the given system followed by a period. pad is the
// minimum digit count and only applies to DecimalLeadingZero.
func Format(n int, s System, pad int) string {
	if s < 0 || int(s) >= len(systems) {
		s = Decimal
	}
	d := systems[s]
	text := d.generate(n)
	if d.padded && pad > 0 {
		text = zeroPad(n, pad)
	}
	if d.upper {
		text = upper.String(text)
	}
	return text + "."
}

func zeroPad(n, pad int) string {
	if n < 0 {
		return "-" + fmt.Sprintf("%0*d", pad, -n)
	}
	return fmt.Sprintf("%0*d", pad, n)
}

// alpha maps n onto a single letter. Only 1..26 are meaningful; larger
// values wrap back to 'a' instead of becoming "aa".
func alpha(n int) string {
	r := n % 26
	if r <= 0 {
		r += 26
	}
	return string(rune('a' + r - 1))
}

var romanDigits = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// roman encodes 1..3999 as a lower-case subtractive numeral; anything
// else falls back to decimal digits.
func roman(n int) string {
	if n < 1 || n > 3999 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, d := range romanDigits {
		for n >= d.value {
			b.WriteString(d.symbol)
			n -= d.value
		}
	}
	return b.String()
}

// greek offsets n into the Greek lowercase block so that 1 is alpha.
func greek(n int) string {
	return string(rune(n + 944))
}
