// Package colorutil provides shared color utilities for the extractor.
package colorutil

import (
	"image/color"
	"math"
)

// RGBToHSV converts RGB (0-255) to HSV (OpenCV convention: H 0-180, S 0-255, V 0-255).
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC * 255.0 // V in 0-255

	if maxC == 0 {
		s = 0
	} else {
		s = (diff / maxC) * 255.0 // S in 0-255
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	h = h / 2 // Convert to OpenCV's 0-180 range

	return h, s, v
}

// ColorToHSV converts a color.Color to HSV (OpenCV convention).
func ColorToHSV(c color.Color) (h, s, v float64) {
	r, g, b, _ := c.RGBA()
	return RGBToHSV(float64(r>>8), float64(g>>8), float64(b>>8))
}

// HSVRange is an inclusive window in HSV space (OpenCV convention).
type HSVRange struct {
	HMin, HMax float64
	SMin, SMax float64
	VMin, VMax float64
}

// Contains reports whether the given HSV triple falls inside the window.
func (r HSVRange) Contains(h, s, v float64) bool {
	return h >= r.HMin && h <= r.HMax &&
		s >= r.SMin && s <= r.SMax &&
		v >= r.VMin && v <= r.VMax
}
