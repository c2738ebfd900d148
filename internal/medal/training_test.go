package medal

import (
	"math"
	"path/filepath"
	"testing"
)

func TestTrainingSetStats(t *testing.T) {
	ts := NewTrainingSet()
	ts.Collect(solidImage(goldColor, 4, 4), Gold)

	s := ts.Stats(Gold)
	if s.HStd != 0 || s.SStd != 0 || s.VStd != 0 {
		t.Fatalf("uniform image should have zero deviation: %+v", s)
	}
	if math.Abs(s.HMean-21.2) > 0.5 {
		t.Fatalf("unexpected hue mean %.2f", s.HMean)
	}
	if s.VMean != 255 {
		t.Fatalf("unexpected value mean %.2f", s.VMean)
	}
}

func TestTrainingSetStatsEmptyLabel(t *testing.T) {
	ts := NewTrainingSet()
	if s := ts.Stats(Bronze); s != (HSVStats{}) {
		t.Fatalf("expected zero stats for empty label, got %+v", s)
	}
}

func TestSuggestWindowContainsSamples(t *testing.T) {
	ts := NewTrainingSet()
	ts.Collect(solidImage(goldColor, 4, 4), Gold)
	ts.Collect(solidImage(bronzeColor, 4, 4), Gold)

	w := ts.SuggestWindow(Gold)
	if w.HMin > w.HMax || w.SMin > w.SMax || w.VMin > w.VMax {
		t.Fatalf("degenerate window: %+v", w)
	}
	if w.HMin < 0 || w.HMax > 180 || w.SMax > 255 || w.VMax > 255 {
		t.Fatalf("window outside HSV bounds: %+v", w)
	}
}

func TestTrainingSetSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medals.json")

	ts := NewTrainingSet()
	ts.Collect(solidImage(silverColor, 3, 3), Silver)
	if err := ts.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadTrainingSet(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Samples[Silver]) != 9 {
		t.Fatalf("expected 9 samples, got %d", len(loaded.Samples[Silver]))
	}
}
