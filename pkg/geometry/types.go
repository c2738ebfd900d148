// Package geometry provides basic geometric types used throughout the application.
package geometry

// Region represents a rectangle in percentage coordinates (0-100) of an
// image's dimensions. Percentage coordinates keep region definitions valid
// across different pixel resolutions of the same screen layout.
type Region struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// NewRegion creates a new Region.
func NewRegion(x, y, w, h float64) Region {
	return Region{X: x, Y: y, W: w, H: h}
}

// ToPixels converts percentage coordinates to a pixel rectangle for an image
// of the given dimensions. Conversion truncates rather than rounds, so the
// same inputs always yield the same rectangle.
func (r Region) ToPixels(imageWidth, imageHeight int) RectInt {
	return RectInt{
		X:      int(r.X / 100 * float64(imageWidth)),
		Y:      int(r.Y / 100 * float64(imageHeight)),
		Width:  int(r.W / 100 * float64(imageWidth)),
		Height: int(r.H / 100 * float64(imageHeight)),
	}
}

// IsZero reports whether the region is the zero value.
func (r Region) IsZero() bool {
	return r == Region{}
}

// RectInt represents a rectangle with integer pixel coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Clamp restricts the rectangle to the bounds of a width x height image.
func (r RectInt) Clamp(width, height int) RectInt {
	if r.X < 0 {
		r.Width += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.Height += r.Y
		r.Y = 0
	}
	if r.X+r.Width > width {
		r.Width = width - r.X
	}
	if r.Y+r.Height > height {
		r.Height = height - r.Y
	}
	return r
}
