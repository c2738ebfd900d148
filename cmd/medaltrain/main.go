// Command medaltrain builds a medal color training set from labeled sample
// crops. It reads crops from gold/, silver/ and bronze/ subdirectories,
// collects per-pixel HSV samples, and writes them to a training set JSON
// file along with suggested detection windows.
//
// Usage: medaltrain <samples-dir> [output-json]
package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"mlbb-extractor/internal/medal"
)

var labels = []medal.Type{medal.Gold, medal.Silver, medal.Bronze}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <samples-dir> [output-json]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nExpects medal crops under <samples-dir>/{gold,silver,bronze}/.\n")
		fmt.Fprintf(os.Stderr, "Default output: medal_training.json\n")
		os.Exit(1)
	}

	samplesDir := os.Args[1]
	outputPath := "medal_training.json"
	if len(os.Args) >= 3 {
		outputPath = os.Args[2]
	}

	ts := medal.NewTrainingSet()
	for _, label := range labels {
		dir := filepath.Join(samplesDir, strings.ToLower(string(label)))
		n, err := collectDir(ts, dir, label)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s samples: %v\n", label, err)
			os.Exit(1)
		}
		fmt.Printf("%-6s %d sample images\n", label, n)
	}

	collected := 0
	for _, label := range labels {
		collected += len(ts.Samples[label])
	}
	if collected == 0 {
		fmt.Println("No samples collected.")
		os.Exit(0)
	}

	for _, label := range labels {
		if len(ts.Samples[label]) == 0 {
			continue
		}
		stats := ts.Stats(label)
		window := ts.SuggestWindow(label)
		fmt.Printf("%s: hue %.1f±%.1f  sat %.1f±%.1f  val %.1f±%.1f\n",
			label, stats.HMean, stats.HStd,
			stats.SMean, stats.SStd,
			stats.VMean, stats.VStd)
		fmt.Printf("  window: H %.0f-%.0f  S %.0f-%.0f  V %.0f-%.0f\n",
			window.HMin, window.HMax, window.SMin, window.SMax, window.VMin, window.VMax)
	}

	if err := ts.Save(outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving training set: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %d pixel samples to %s\n", collected, outputPath)
}

// collectDir feeds every decodable image in dir into the training set. A
// missing directory contributes zero samples.
func collectDir(ts *medal.TrainingSet, dir string, label medal.Type) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	n := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		img, err := loadImage(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", path, err)
			continue
		}
		ts.Collect(img, label)
		n++
	}
	return n, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	return img, nil
}
