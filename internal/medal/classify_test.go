package medal

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(c color.RGBA, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

var (
	goldColor   = color.RGBA{R: 255, G: 180, B: 0, A: 255}  // H~21, saturated, bright
	silverColor = color.RGBA{R: 220, G: 220, B: 220, A: 255} // desaturated, bright
	bronzeColor = color.RGBA{R: 150, G: 75, B: 20, A: 255}  // H~13, saturated, mid value
)

func TestClassifySolidColors(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want Type
	}{
		{"gold", goldColor, Gold},
		{"silver", silverColor, Silver},
		{"bronze", bronzeColor, Bronze},
		{"black", color.RGBA{A: 255}, None},
	}
	for _, tt := range tests {
		if got := Classify(solidImage(tt.c, 10, 10)); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestClassifyBelowPixelThreshold(t *testing.T) {
	// 49 gold pixels: one short of the minimum.
	if got := Classify(solidImage(goldColor, 7, 7)); got != None {
		t.Fatalf("expected None below threshold, got %q", got)
	}
}

func TestClassifyEmptyRegion(t *testing.T) {
	if got := Classify(image.NewRGBA(image.Rect(0, 0, 0, 0))); got != None {
		t.Fatalf("expected None for empty region, got %q", got)
	}
	if got := Classify(nil); got != None {
		t.Fatalf("expected None for nil image, got %q", got)
	}
}

func TestClassifyDominantWindowWins(t *testing.T) {
	// 60% gold, 40% silver pixels.
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if y < 6 {
				img.SetRGBA(x, y, goldColor)
			} else {
				img.SetRGBA(x, y, silverColor)
			}
		}
	}
	if got := Classify(img); got != Gold {
		t.Fatalf("expected Gold to dominate, got %q", got)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	img := solidImage(bronzeColor, 12, 12)
	if Classify(img) != Classify(img) {
		t.Fatal("classification is not deterministic")
	}
}
