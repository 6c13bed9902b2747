package media

import (
	"image"
	"image/color"
	"testing"
)

func TestFit(t *testing.T) {
	cases := []struct {
		w, h, size   int
		wantW, wantH int
	}{
		{300, 200, 128, 128, 85},
		{200, 300, 128, 85, 128},
		{100, 100, 128, 100, 100},
		{1000, 2, 128, 128, 1},
	}
	for _, c := range cases {
		src := image.NewRGBA(image.Rect(0, 0, c.w, c.h))
		got := fit(src, c.size)
		b := got.Bounds()
		if b.Dx() != c.wantW || b.Dy() != c.wantH {
			t.Errorf("fit(%dx%d, %d): expected %dx%d, got %dx%d",
				c.w, c.h, c.size, c.wantW, c.wantH, b.Dx(), b.Dy())
		}
	}
}

func TestRotate(t *testing.T) {
	// 2x1 image: red at (0,0), blue at (1,0).
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	src.Set(0, 0, red)
	src.Set(1, 0, blue)

	r90 := rotate(src, 90)
	if b := r90.Bounds(); b.Dx() != 1 || b.Dy() != 2 {
		t.Fatalf("rotate 90: expected 1x2, got %dx%d", b.Dx(), b.Dy())
	}
	// Counter-clockwise: the right pixel moves to the top.
	if got := r90.At(0, 0); got != color.RGBA(blue) {
		t.Errorf("rotate 90: expected blue at (0,0), got %v", got)
	}
	if got := r90.At(0, 1); got != color.RGBA(red) {
		t.Errorf("rotate 90: expected red at (0,1), got %v", got)
	}

	r180 := rotate(src, 180)
	if got := r180.At(0, 0); got != color.RGBA(blue) {
		t.Errorf("rotate 180: expected blue at (0,0), got %v", got)
	}

	r270 := rotate(src, 270)
	if b := r270.Bounds(); b.Dx() != 1 || b.Dy() != 2 {
		t.Fatalf("rotate 270: expected 1x2, got %dx%d", b.Dx(), b.Dy())
	}
	if got := r270.At(0, 0); got != color.RGBA(red) {
		t.Errorf("rotate 270: expected red at (0,0), got %v", got)
	}

	if got := rotate(src, 0); got != image.Image(src) {
		t.Error("rotate 0 should return the source image")
	}
}
