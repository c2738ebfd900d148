package decode

import "testing"

func TestParseResult(t *testing.T) {
	tests := []struct {
		text string
		want MatchResult
	}{
		{"VICTORY", ResultVictory},
		{"victory", ResultVictory},
		{"VlCTORY VICTOR", ResultVictory},
		{"Y0U WIN", ResultVictory},
		{"DEFEAT", ResultDefeat},
		{"you lose", ResultDefeat},
		{"LOSS", ResultDefeat},
		{"xyz", ResultUnknown},
		{"", ResultUnknown},
		// Victory markers win over defeat markers.
		{"WIN LOSS", ResultVictory},
	}
	for _, tt := range tests {
		if got := ParseResult(tt.text); got != tt.want {
			t.Errorf("ParseResult(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		text string
		def  int
		want int
	}{
		{"23", 0, 23},
		{" 1 7 ", 0, 1},
		{"score: 42 pts", 0, 42},
		{"no digits", 9, 9},
		{"", 0, 0},
	}
	for _, tt := range tests {
		if got := ParseNumber(tt.text, tt.def); got != tt.want {
			t.Errorf("ParseNumber(%q, %d) = %d, want %d", tt.text, tt.def, got, tt.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"18:45", "18:45"},
		{"07:45", "7:45"},
		{"18 45", "18:45"},
		{"18.4", "18:04"},
		{"garbage", "00:00"},
		{"12", "00:00"},
		{"", "00:00"},
	}
	for _, tt := range tests {
		if got := ParseDuration(tt.text); got != tt.want {
			t.Errorf("ParseDuration(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
