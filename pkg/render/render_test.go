package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"folio/pkg/css"
	"folio/pkg/layout"
)

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func redDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestRenderer_PaintsFloatsAndMarkers(t *testing.T) {
	page := &layout.Page{
		Width:  100,
		Height: 60,
		Floats: []*layout.FloatBox{
			{ID: "red", Style: css.ParseInlineStyle("background-color: red"), Rect: layout.Rect{X: 10, Y: 10, Width: 20, Height: 20}},
			{ID: "plain", Style: css.NewStyle(), Rect: layout.Rect{X: 70, Y: 10, Width: 20, Height: 20}},
		},
		Markers: []*layout.MarkerBox{
			{ItemID: "l/1", Style: css.ParseInlineStyle("font-size: 20pt"), X: 60, Y: 40, Index: 1, Total: 1},
		},
	}

	r := NewRenderer(PageSize(page))
	r.Render(page)
	img := r.Image()

	if got := rgbaAt(img, 20, 20); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("float pixel = %v, want red", got)
	}
	if got := rgbaAt(img, 80, 20); got != (color.RGBA{192, 192, 192, 255}) {
		t.Errorf("default float pixel = %v, want silver", got)
	}
	if got := rgbaAt(img, 2, 2); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background pixel = %v, want white", got)
	}
	// Disc centre: (60 - 3.5, 40 + 7).
	if got := rgbaAt(img, 56, 47); got.R > 64 || got.G > 64 || got.B > 64 {
		t.Errorf("disc pixel = %v, want black", got)
	}
}

func TestRenderer_PaintsDataURIMarker(t *testing.T) {
	page := &layout.Page{
		Width:  80,
		Height: 80,
		Markers: []*layout.MarkerBox{
			{ItemID: "l/1", Style: css.ParseInlineStyle("list-style-image: url(" + redDataURI(t) + ")"), X: 60, Y: 40, Index: 1, Total: 1},
		},
	}

	// 2 px at 7.2 dpi is 20pt, so the image spans x 40..60, y 38.8..58.8.
	w, h := PageSize(page)
	r := NewRenderer(w, h, WithMarkerOptions(WithDPI(7.2)))
	r.Render(page)

	if got := rgbaAt(r.Image(), 50, 48); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("marker pixel = %v, want red", got)
	}
}

func TestCanvas_ImageAndOpacity(t *testing.T) {
	c := NewCanvas(40, 20, nil, nil, nil)
	uri := redDataURI(t)

	c.Image(uri, 0, 0, 10, 10)
	c.SetOpacity(0.5)
	c.Image(uri, 20, 0, 10, 10)
	c.Image("missing.png", 30, 0, 10, 10)

	img := c.Raster()
	if got := rgbaAt(img, 5, 5); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("opaque image pixel = %v, want red", got)
	}
	faded := rgbaAt(img, 25, 5)
	if faded.R != 255 || faded.G < 100 || faded.G > 155 {
		t.Errorf("faded image pixel = %v, want pink", faded)
	}
	if got := rgbaAt(img, 35, 5); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("missing image pixel = %v, want white", got)
	}
}

func TestCanvas_Text(t *testing.T) {
	c := NewCanvas(80, 30, nil, nil, nil)
	c.Text(2, 2, "MM", "sans-serif", 20, css.Color{}, 0)

	img := c.Raster()
	dark := 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 80; x++ {
			if rgbaAt(img, x, y).R < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("expected text to paint dark pixels")
	}
}

func TestRenderer_SavePNG(t *testing.T) {
	r := NewRenderer(10, 10)
	r.Render(&layout.Page{Width: 10, Height: 10})

	path := filepath.Join(t.TempDir(), "page.png")
	if err := r.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("expected a non-empty PNG, err=%v", err)
	}
}
