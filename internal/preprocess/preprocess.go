// Package preprocess prepares screenshot regions for OCR using OpenCV.
// Each strategy mirrors one rendering of a region: the decoders consume
// several renderings of the same pixels and reconcile them.
package preprocess

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"mlbb-extractor/pkg/geometry"
)

// Strategy names a preprocessing rendering. The decoding layer selects a
// strategy and scale; executing it is this package's job.
type Strategy string

const (
	// GrayscaleScaled is the baseline: grayscale plus cubic upscaling.
	GrayscaleScaled Strategy = "grayscale-scaled"
	// Threshold produces black text on white via inverted Otsu binarization.
	// Best for light text on a colored background (rating, result banner).
	Threshold Strategy = "threshold"
	// Inverted is the grayscale rendering with colors flipped.
	Inverted Strategy = "inverted"
)

// Load reads an image from disk as a BGR matrix.
func Load(path string) (gocv.Mat, error) {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		return gocv.Mat{}, fmt.Errorf("could not load image from %s", path)
	}
	return img, nil
}

// Crop extracts a percentage region from the image. The caller owns the
// returned matrix. Cropping an empty rectangle returns an empty matrix.
func Crop(img gocv.Mat, region geometry.Region) gocv.Mat {
	rect := region.ToPixels(img.Cols(), img.Rows()).Clamp(img.Cols(), img.Rows())
	if rect.Empty() {
		return gocv.NewMat()
	}
	roi := img.Region(image.Rect(rect.X, rect.Y, rect.X+rect.Width, rect.Y+rect.Height))
	defer roi.Close()
	return roi.Clone()
}

// Apply runs a preprocessing strategy at the given scale factor and returns
// a new matrix owned by the caller.
func Apply(img gocv.Mat, strategy Strategy, scale float64) gocv.Mat {
	switch strategy {
	case Threshold:
		return thresholdScaled(img, scale)
	case Inverted:
		return invertedScaled(img, scale)
	default:
		return grayscaleScaled(img, scale)
	}
}

// grayscaleScaled converts to grayscale and upscales with cubic
// interpolation, the cheapest rendering that reliably helps Tesseract.
func grayscaleScaled(img gocv.Mat, scale float64) gocv.Mat {
	gray := toGray(img)
	defer gray.Close()

	scaled := gocv.NewMat()
	gocv.Resize(gray, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	return scaled
}

// thresholdScaled binarizes with inverted Otsu: white-on-color text comes
// out as dark text on a light background, which OCR expects.
func thresholdScaled(img gocv.Mat, scale float64) gocv.Mat {
	gray := grayscaleScaled(img, scale)
	defer gray.Close()

	binary := gocv.NewMat()
	gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinaryInv|gocv.ThresholdOtsu)
	return binary
}

// invertedScaled flips the grayscale rendering.
func invertedScaled(img gocv.Mat, scale float64) gocv.Mat {
	gray := grayscaleScaled(img, scale)
	defer gray.Close()

	inverted := gocv.NewMat()
	gocv.BitwiseNot(gray, &inverted)
	return inverted
}

// Denoise applies non-local means denoising to a grayscale matrix.
func Denoise(img gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	gocv.FastNlMeansDenoisingWithParams(img, &out, 10, 7, 21)
	return out
}

// AdaptiveThreshold binarizes with a Gaussian adaptive threshold, useful on
// unevenly lit captures.
func AdaptiveThreshold(img gocv.Mat) gocv.Mat {
	gray := toGray(img)
	defer gray.Close()

	out := gocv.NewMat()
	gocv.AdaptiveThreshold(gray, &out, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary, 11, 2)
	return out
}

func toGray(img gocv.Mat) gocv.Mat {
	if img.Channels() == 1 {
		return img.Clone()
	}
	gray := gocv.NewMat()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	return gray
}
