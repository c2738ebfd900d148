package decode

import "testing"

func TestParseRating(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		// Literal decimal point.
		{"7.8", 7.8},
		{"7.87", 7.8}, // fraction truncated to one digit
		{"12.3", 12.3},
		// Digit-only by length.
		{"7", 7.0},
		{"78", 7.8},
		{"61", 6.1},
		{"115", 11.5},
		{"757", 7.5},  // 75.7 out of range, falls back to first two digits
		{"5617", 6.1}, // middle digits are the most reliable
		// Out of range everywhere.
		{"abc", 0.0},
		{"", 0.0},
		{"1", 0.0},  // 1.0 below minimum
		{"99", 9.9},
		{"2.5", 0.0}, // literal but below minimum, no digit fallback in range
	}
	for _, tt := range tests {
		if got := ParseRating(tt.text, 0.0); got != tt.want {
			t.Errorf("ParseRating(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParseRatingCustomDefault(t *testing.T) {
	if got := ParseRating("no digits", 4.2); got != 4.2 {
		t.Fatalf("expected caller default, got %v", got)
	}
}

func TestParseRatingNoisyDecimal(t *testing.T) {
	// OCR noise around a literal decimal reading.
	if got := ParseRating(" 9.4 ", 0.0); got != 9.4 {
		t.Fatalf("got %v", got)
	}
}

func TestParseRatingIdempotent(t *testing.T) {
	a := ParseRating("5617", 0.0)
	b := ParseRating("5617", 0.0)
	if a != b {
		t.Fatalf("not deterministic: %v vs %v", a, b)
	}
}
