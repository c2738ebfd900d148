package colorutil

import (
	"image/color"
	"math"
	"testing"
)

func TestRGBToHSVPrimaries(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		h, s, v float64
	}{
		{"red", 255, 0, 0, 0, 255, 255},
		{"green", 0, 255, 0, 60, 255, 255},
		{"blue", 0, 0, 255, 120, 255, 255},
		{"black", 0, 0, 0, 0, 0, 0},
		{"white", 255, 255, 255, 0, 0, 255},
	}
	for _, tt := range tests {
		h, s, v := RGBToHSV(tt.r, tt.g, tt.b)
		if math.Abs(h-tt.h) > 0.5 || math.Abs(s-tt.s) > 0.5 || math.Abs(v-tt.v) > 0.5 {
			t.Errorf("%s: got (%.1f, %.1f, %.1f), want (%.1f, %.1f, %.1f)",
				tt.name, h, s, v, tt.h, tt.s, tt.v)
		}
	}
}

func TestColorToHSVMatchesRGBToHSV(t *testing.T) {
	c := color.RGBA{R: 200, G: 150, B: 40, A: 255}
	h1, s1, v1 := ColorToHSV(c)
	h2, s2, v2 := RGBToHSV(200, 150, 40)
	if h1 != h2 || s1 != s2 || v1 != v2 {
		t.Fatalf("mismatch: (%.2f,%.2f,%.2f) vs (%.2f,%.2f,%.2f)", h1, s1, v1, h2, s2, v2)
	}
}

func TestHSVRangeContains(t *testing.T) {
	gold := HSVRange{HMin: 15, HMax: 35, SMin: 80, SMax: 255, VMin: 120, VMax: 255}
	if !gold.Contains(25, 200, 220) {
		t.Fatal("mid-window value should be contained")
	}
	if gold.Contains(14.9, 200, 220) {
		t.Fatal("hue below window should be excluded")
	}
	if !gold.Contains(15, 80, 120) {
		t.Fatal("window bounds are inclusive")
	}
}
