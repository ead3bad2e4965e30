// Package document loads the YAML description of a page: floats,
// paragraphs and lists in flow order.
package document

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"folio/pkg/css"
)

// Kind classifies a block.
type Kind int

const (
	KindParagraph Kind = iota
	KindFloat
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindList:
		return "list"
	}
	return "paragraph"
}

// Page overrides the configured page geometry when non-zero.
type Page struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

// Block is one entry in the flow.
type Block struct {
	ID    string `yaml:"id"`
	Style string `yaml:"style"`

	// Floats
	Float  string  `yaml:"float"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Paragraphs
	Text string `yaml:"text"`

	// Lists
	Items []string `yaml:"items"`
	Start *int     `yaml:"start"`

	// Static paragraphs and lists are laid out without a reflow context:
	// their lines ignore floats.
	Static bool `yaml:"static"`
}

type Document struct {
	Page   Page    `yaml:"page"`
	Blocks []Block `yaml:"blocks"`
}

// Kind returns the block's kind.
func (b Block) Kind() Kind {
	switch {
	case b.Float != "":
		return KindFloat
	case b.Items != nil:
		return KindList
	}
	return KindParagraph
}

// ComputedStyle parses the block's inline style. A float side given by
// the float key wins over one in the style string.
func (b Block) ComputedStyle() *css.Style {
	style := css.ParseInlineStyle(b.Style)
	if b.Float != "" {
		style.Set("float", strings.ToLower(b.Float))
	}
	return style
}

// StartValue returns the number of the first list item (default 1).
func (b Block) StartValue() int {
	if b.Start == nil {
		return 1
	}
	return *b.Start
}

// Load reads and parses a document file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("document: %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML document, assigns ids to anonymous blocks and
// validates it.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for i := range doc.Blocks {
		if strings.TrimSpace(doc.Blocks[i].ID) == "" {
			doc.Blocks[i].ID = uuid.NewString()
		}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks block ids are unique and floats are well formed.
func (d *Document) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(d.Blocks))
	for i, b := range d.Blocks {
		if seen[b.ID] {
			errs = append(errs, fmt.Errorf("block %d: duplicate id %q", i, b.ID))
		}
		seen[b.ID] = true

		if b.Kind() != KindFloat {
			continue
		}
		if side := strings.ToLower(b.Float); side != "left" && side != "right" {
			errs = append(errs, fmt.Errorf("block %d: float must be left or right, got %q", i, b.Float))
		}
		if b.Width <= 0 || b.Height <= 0 {
			errs = append(errs, fmt.Errorf("block %d: float needs a positive width and height", i))
		}
		if b.Items != nil || b.Text != "" {
			errs = append(errs, fmt.Errorf("block %d: a float cannot carry text or items", i))
		}
		if b.Static {
			errs = append(errs, fmt.Errorf("block %d: a float cannot be static", i))
		}
	}
	if d.Page.Width < 0 || d.Page.Height < 0 || d.Page.Margin < 0 {
		errs = append(errs, errors.New("page dimensions must not be negative"))
	}
	return errors.Join(errs...)
}
