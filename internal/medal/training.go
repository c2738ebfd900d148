package medal

import (
	"encoding/json"
	"fmt"
	"image"
	"os"

	"gonum.org/v1/gonum/stat"

	"mlbb-extractor/pkg/colorutil"
)

// HSVSample holds a single pixel's color in HSV space.
type HSVSample struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// HSVStats holds mean and standard deviation for H, S, V across a sample set.
type HSVStats struct {
	HMean float64 `json:"h_mean"`
	HStd  float64 `json:"h_std"`
	SMean float64 `json:"s_mean"`
	SStd  float64 `json:"s_std"`
	VMean float64 `json:"v_mean"`
	VStd  float64 `json:"v_std"`
}

// TrainingSet holds color samples collected from labelled medal crops, used
// to audit and retune the fixed classification windows.
type TrainingSet struct {
	Samples map[Type][]HSVSample `json:"samples"`
}

// NewTrainingSet returns an empty training set.
func NewTrainingSet() *TrainingSet {
	return &TrainingSet{Samples: map[Type][]HSVSample{}}
}

// Collect samples every pixel of a labelled medal crop into the set.
func (ts *TrainingSet) Collect(img image.Image, label Type) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			h, s, v := colorutil.ColorToHSV(img.At(x, y))
			ts.Samples[label] = append(ts.Samples[label], HSVSample{H: h, S: s, V: v})
		}
	}
}

// Stats summarizes the samples collected for one label.
func (ts *TrainingSet) Stats(label Type) HSVStats {
	samples := ts.Samples[label]
	if len(samples) == 0 {
		return HSVStats{}
	}

	hs := make([]float64, len(samples))
	ss := make([]float64, len(samples))
	vs := make([]float64, len(samples))
	for i, s := range samples {
		hs[i], ss[i], vs[i] = s.H, s.S, s.V
	}

	var out HSVStats
	out.HMean, out.HStd = stat.MeanStdDev(hs, nil)
	out.SMean, out.SStd = stat.MeanStdDev(ss, nil)
	out.VMean, out.VStd = stat.MeanStdDev(vs, nil)
	return out
}

// SuggestWindow derives an HSV window from the collected samples of one
// label: mean plus/minus two standard deviations, clamped to valid HSV.
func (ts *TrainingSet) SuggestWindow(label Type) colorutil.HSVRange {
	s := ts.Stats(label)
	clamp := func(v, lo, hi float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return colorutil.HSVRange{
		HMin: clamp(s.HMean-2*s.HStd, 0, 180),
		HMax: clamp(s.HMean+2*s.HStd, 0, 180),
		SMin: clamp(s.SMean-2*s.SStd, 0, 255),
		SMax: clamp(s.SMean+2*s.SStd, 0, 255),
		VMin: clamp(s.VMean-2*s.VStd, 0, 255),
		VMax: clamp(s.VMean+2*s.VStd, 0, 255),
	}
}

// Save writes the training set to a JSON file.
func (ts *TrainingSet) Save(path string) error {
	data, err := json.MarshalIndent(ts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal training set: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTrainingSet reads a training set from a JSON file.
func LoadTrainingSet(path string) (*TrainingSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ts TrainingSet
	if err := json.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("unmarshal training set: %w", err)
	}
	if ts.Samples == nil {
		ts.Samples = map[Type][]HSVSample{}
	}
	return &ts, nil
}
