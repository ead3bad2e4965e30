package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	red := color.RGBA{255, 0, 0, 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, red)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// createTestPNGDataURI creates a small red PNG as a data URI.
func createTestPNGDataURI(t *testing.T, w, h int) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(testPNG(t, w, h))
}

func TestIsDataURI(t *testing.T) {
	if !IsDataURI("data:image/png;base64,abc") {
		t.Error("expected true for data URI")
	}
	if IsDataURI("/path/to/file.png") {
		t.Error("expected false for file path")
	}
	if IsDataURI("") {
		t.Error("expected false for empty string")
	}
}

func TestLoadImageFromDataURI_Invalid(t *testing.T) {
	tests := []string{
		"not-a-data-uri",
		"data:image/png;base64", // no comma
		"data:image/png;base64,!!!invalid-base64!!!",
		"data:image/png;base64,aGVsbG8=", // valid base64 but not an image
	}
	for _, uri := range tests {
		if _, err := LoadImageFromDataURI(uri); err == nil {
			t.Errorf("expected error for %q", uri)
		}
	}
}

func TestCache_NaturalSizeFromDataURI(t *testing.T) {
	c := NewCache(nil)
	uri := createTestPNGDataURI(t, 3, 2)

	w, h, err := c.NaturalSize(uri)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 3 || h != 2 {
		t.Errorf("expected 3x2, got %dx%d", w, h)
	}
	if c.IsBroken(uri) {
		t.Error("expected image not broken")
	}
}

func TestCache_CachesImages(t *testing.T) {
	calls := 0
	data := testPNG(t, 1, 1)
	c := NewCache(func(uri string) ([]byte, error) {
		calls++
		return data, nil
	})

	img, err := c.Load("dot.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img2, _ := c.Load("dot.png")
	if img != img2 || calls != 1 {
		t.Errorf("expected one fetch and a cached image, got %d fetches", calls)
	}
}

func TestCache_BrokenIsRemembered(t *testing.T) {
	calls := 0
	c := NewCache(func(uri string) ([]byte, error) {
		calls++
		return nil, errors.New("gone")
	})

	if !c.IsBroken("missing.png") {
		t.Fatal("expected missing image to be broken")
	}
	if !c.IsBroken("missing.png") || calls != 1 {
		t.Errorf("expected broken result without retry, got %d fetches", calls)
	}
	if _, _, err := c.NaturalSize("missing.png"); err == nil {
		t.Error("expected NaturalSize to fail for a broken image")
	}
	if !c.IsBroken("") {
		t.Error("expected empty uri to be broken")
	}
}

func TestFilesystemFetcher(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dot.png"), testPNG(t, 4, 4), 0o644); err != nil {
		t.Fatal(err)
	}
	c := NewCache(NewFilesystemFetcher(filepath.Join(dir, "doc.yaml")))

	w, h, err := c.NaturalSize("dot.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 4 || h != 4 {
		t.Errorf("expected 4x4, got %dx%d", w, h)
	}
	if !c.IsBroken("nope.png") {
		t.Error("expected missing relative file to be broken")
	}
}
