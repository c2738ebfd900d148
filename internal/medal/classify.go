// Package medal classifies player medals (gold, silver, bronze) by color.
// Medals are detected from pixel color in HSV space, not OCR: the badge is
// an icon, not text.
package medal

import (
	"image"

	"mlbb-extractor/pkg/colorutil"
)

// Type is the medal tier awarded to a player.
type Type string

const (
	Gold   Type = "GOLD"
	Silver Type = "SILVER"
	Bronze Type = "BRONZE"
	None   Type = "NONE"
)

// minPixels is the minimum number of in-window pixels for a positive
// classification. Below this the crop is treated as having no medal.
const minPixels = 50

// Color windows in OpenCV HSV convention (H 0-180, S/V 0-255).
// Gold: saturated warm yellow. Silver: desaturated bright. Bronze: darker
// saturated orange-brown, overlapping gold's low hues.
var (
	goldWindow   = colorutil.HSVRange{HMin: 15, HMax: 35, SMin: 80, SMax: 255, VMin: 120, VMax: 255}
	silverWindow = colorutil.HSVRange{HMin: 0, HMax: 180, SMin: 0, SMax: 50, VMin: 150, VMax: 255}
	bronzeWindow = colorutil.HSVRange{HMin: 8, HMax: 20, SMin: 80, SMax: 255, VMin: 80, VMax: 200}
)

// Classify determines the medal tier of a cropped badge region by counting
// pixels inside each color window. The dominant window wins, tie-broken
// gold > silver > bronze. Empty or too-small regions classify as None;
// Classify never fails.
func Classify(img image.Image) Type {
	if img == nil {
		return None
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return None
	}

	var goldCount, silverCount, bronzeCount int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			h, s, v := colorutil.ColorToHSV(img.At(x, y))
			if goldWindow.Contains(h, s, v) {
				goldCount++
			}
			if silverWindow.Contains(h, s, v) {
				silverCount++
			}
			if bronzeWindow.Contains(h, s, v) {
				bronzeCount++
			}
		}
	}

	maxCount := max(goldCount, max(silverCount, bronzeCount))
	if maxCount < minPixels {
		return None
	}
	switch maxCount {
	case goldCount:
		return Gold
	case silverCount:
		return Silver
	default:
		return Bronze
	}
}
