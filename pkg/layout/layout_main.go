package layout

import (
	"fmt"
	"strconv"
	"strings"

	"folio/pkg/css"
	"folio/pkg/document"
)

// Layout lays out the document in a new pass and returns the placed page.
func (le *LayoutEngine) Layout(doc *document.Document) *Page {
	width, height, margin := le.page.width, le.page.height, le.margin
	if doc.Page.Width > 0 {
		width = doc.Page.Width
	}
	if doc.Page.Height > 0 {
		height = doc.Page.Height
	}
	if doc.Page.Margin > 0 {
		margin = doc.Page.Margin
	}

	pass := le.newPass()
	le.counters = make(map[string][]int)

	page := &Page{Width: width, Height: height}
	contentX := margin
	contentW := width - 2*margin
	y := margin

	for _, block := range doc.Blocks {
		style := block.ComputedStyle()
		switch block.Kind() {
		case document.KindFloat:
			// Floats are out of flow: y does not advance.
			page.Floats = append(page.Floats, le.placeFloat(pass, block, style, contentX, contentW, y))
		case document.KindList:
			y = pass.Floats.Bottom(style.GetClear(), y)
			y = le.layoutList(pass, page, block, style, contentX, contentW, y)
		default:
			y = pass.Floats.Bottom(style.GetClear(), y)
			box := le.layoutParagraph(pass, block, style, contentX, contentW, y)
			page.Blocks = append(page.Blocks, box)
			y = box.Y + box.Height + box.Margin.Bottom
		}
	}

	page.FloatAttempts = pass.Attempts()
	le.logger.Debug("layout done", "blocks", len(page.Blocks), "floats", len(page.Floats),
		"markers", len(page.Markers), "float_attempts", page.FloatAttempts, "bottom", y)
	return page
}

// placeFloat registers a float at y against the left or right edge of the
// content area, beside any floats already occupying that y.
func (le *LayoutEngine) placeFloat(pass *Pass, block document.Block, style *css.Style, contentX, contentW, y float64) *FloatBox {
	// CSS 2.1 §9.5: Float exclusions use margin-box dimensions
	m := style.GetMargin()
	marginBoxWidth := m.Left + block.Width + m.Right
	marginBoxHeight := m.Top + block.Height + m.Bottom

	side := style.GetFloat()
	leftOffset, rightOffset := pass.Floats.Intrusion(y)
	x := contentX + leftOffset
	if side == css.FloatRight {
		x = contentX + contentW - rightOffset - marginBoxWidth
	}

	f := &Floating{
		ID:              block.ID,
		Side:            side,
		MarginWidth:     marginBoxWidth,
		MarginHeight:    marginBoxHeight,
		X:               x,
		Y:               y,
		ContainingWidth: contentW,
	}
	if err := pass.Floats.Register(f); err != nil {
		le.logger.Warn("float not registered", "err", err)
	} else {
		le.logger.Debug("float placed", "float", f.String())
	}

	return &FloatBox{
		ID:    block.ID,
		Side:  side,
		Style: style,
		Rect:  Rect{X: x + m.Left, Y: y + m.Top, Width: block.Width, Height: block.Height},
	}
}

func (le *LayoutEngine) layoutParagraph(pass *Pass, block document.Block, style *css.Style, x, w, y float64) *Box {
	m := style.GetMargin()
	box := &Box{
		ID:     block.ID,
		Style:  style,
		X:      x + m.Left,
		Y:      y + m.Top,
		Width:  w - m.Left - m.Right,
		Margin: m,
		Static: block.Static,
	}
	le.flowText(pass, box, block.Text)
	return box
}

// layoutList lays out each item as its own block indented by the list's
// left padding and records a marker at the start of the item's first line.
func (le *LayoutEngine) layoutList(pass *Pass, page *Page, block document.Block, style *css.Style, x, w, y float64) float64 {
	fontSize := style.GetFontSize()
	lineHeight := style.GetLineHeight()
	m := style.GetMargin()
	indent := style.GetPadding().Left
	if indent == 0 {
		indent = fontSize * 2.5
	}

	reset := listItemCounter + " " + strconv.Itoa(block.StartValue()-1)
	if v, ok := style.Get("counter-reset"); ok {
		reset = v
	}
	pushed := le.applyCounterProperties(reset, "")
	defer func() {
		for _, name := range pushed {
			le.counterPop(name)
		}
	}()

	y += m.Top
	for i, item := range block.Items {
		le.applyCounterProperties("", listItemCounter)

		box := &Box{
			ID:     fmt.Sprintf("%s/%d", block.ID, i),
			Style:  style,
			X:      x + m.Left + indent,
			Y:      y,
			Width:  w - m.Left - m.Right - indent,
			Static: block.Static,
		}
		le.flowText(pass, box, item)
		page.Blocks = append(page.Blocks, box)

		first := box.LineBoxes[0]
		page.Markers = append(page.Markers, &MarkerBox{
			ItemID: box.ID,
			Style:  style,
			X:      box.X + first.Left,
			Y:      first.Y + (lineHeight-fontSize)/2,
			Index:  le.counterValue(listItemCounter),
			Total:  len(block.Items),
		})
		y = box.Y + box.Height
	}
	return y + m.Bottom
}

// flowText breaks content into words and fills line boxes, opening a new
// line whenever the next word would not fit beside the floats intruding
// into the current one. Sets box.LineBoxes and box.Height.
func (le *LayoutEngine) flowText(pass *Pass, box *Box, content string) {
	style := box.Style
	fontSize := style.GetFontSize()
	family := style.GetFontFamily()
	lineHeight := style.GetLineHeight()
	space := le.metrics.Measure(" ", family, fontSize, 0)

	words := strings.Fields(content)
	lineY := box.Y
	line := NewLineBox(pass, box, lineY)
	for i := 0; i < len(words); {
		ww := le.metrics.Measure(words[i], family, fontSize, 0)
		gap := space
		if line.WC == 0 {
			gap = 0
		}

		// A word wider than an unobstructed line still goes on it.
		if line.Width()+gap+ww > box.Width && (line.WC > 0 || line.Left+line.Right > 0) {
			box.LineBoxes = append(box.LineBoxes, line)
			lineY += lineHeight
			line = NewLineBox(pass, box, lineY)
			continue
		}

		word := &Word{
			Text:  words[i],
			Style: style,
			X:     box.X + line.Left + line.W + gap,
			Y:     lineY,
			W:     ww,
			H:     lineHeight,
		}
		line.AddFrame(word)
		line.W += gap + ww
		line.WC++
		if line.Tallest == nil || word.H > line.Tallest.Height() {
			line.Tallest = word
			line.H = word.H
		}
		i++
	}
	box.LineBoxes = append(box.LineBoxes, line)
	box.Height = lineY + lineHeight - box.Y
}
