package media_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"fdb/internal/media"
	"fdb/pkg/models"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	fp, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer fp.Close()
	if err := png.Encode(fp, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func findAttr(attrs []models.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func TestDetectType(t *testing.T) {
	path := writeTestPNG(t, 4, 4)
	if got := media.DetectType(path); got != "image/png" {
		t.Errorf("expected image/png, got %q", got)
	}

	txt := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(txt, []byte("plain text here"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := media.DetectType(txt); got != "text/plain" {
		t.Errorf("expected text/plain, got %q", got)
	}

	if got := media.DetectType(filepath.Join(t.TempDir(), "missing")); got != "" {
		t.Errorf("expected empty type for missing file, got %q", got)
	}
}

func TestIdentifyImage(t *testing.T) {
	path := writeTestPNG(t, 300, 200)

	info := media.Identify(path, "image/png", 128)

	if w, ok := findAttr(info.Attrs, "width"); !ok || w != "300" {
		t.Errorf("expected width 300, got %q", w)
	}
	if h, ok := findAttr(info.Attrs, "height"); !ok || h != "200" {
		t.Errorf("expected height 200, got %q", h)
	}

	if info.Thumbnail == nil {
		t.Fatal("expected a thumbnail")
	}
	thumb, err := jpeg.Decode(bytes.NewReader(info.Thumbnail))
	if err != nil {
		t.Fatalf("thumbnail is not valid JPEG: %v", err)
	}
	b := thumb.Bounds()
	if b.Dx() != 128 {
		t.Errorf("expected thumbnail width 128, got %d", b.Dx())
	}
	if b.Dy() > 128 {
		t.Errorf("thumbnail height %d exceeds bound", b.Dy())
	}
}

func TestIdentifySmallImageKeepsSize(t *testing.T) {
	path := writeTestPNG(t, 40, 30)

	info := media.Identify(path, "image/png", 128)
	if info.Thumbnail == nil {
		t.Fatal("expected a thumbnail")
	}
	thumb, err := jpeg.Decode(bytes.NewReader(info.Thumbnail))
	if err != nil {
		t.Fatalf("thumbnail is not valid JPEG: %v", err)
	}
	if b := thumb.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("expected 40x30 thumbnail, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestIdentifyUnknownType(t *testing.T) {
	txt := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(txt, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	info := media.Identify(txt, "text/plain", 128)
	if info.Timestamp != "" || len(info.Attrs) != 0 || info.Thumbnail != nil {
		t.Errorf("expected empty info for text file, got %+v", info)
	}
}
