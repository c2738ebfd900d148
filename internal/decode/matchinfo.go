// Package decode turns noisy per-region OCR text into validated game values.
// Every decoder is a pure function: identical input text always produces an
// identical result, failures degrade to sentinel values and never to errors.
package decode

import (
	"regexp"
	"strconv"
	"strings"
)

// MatchResult is the outcome of a match as read from the result banner.
type MatchResult string

const (
	ResultVictory MatchResult = "VICTORY"
	ResultDefeat  MatchResult = "DEFEAT"
	ResultUnknown MatchResult = "UNKNOWN"
)

// MatchInfo holds the per-match summary fields.
type MatchInfo struct {
	Result             MatchResult `json:"result"`
	MyTeamScore        int         `json:"my_team_score"`
	AdversaryTeamScore int         `json:"adversary_team_score"`
	Duration           string      `json:"duration"` // m:ss
}

var (
	digitRunRe = regexp.MustCompile(`\d+`)
	durationRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// ParseResult classifies the OCR'd result banner text. Victory markers are
// checked before defeat markers; anything else is unknown.
func ParseResult(text string) MatchResult {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "VICTORY"),
		strings.Contains(upper, "VICTOR"),
		strings.Contains(upper, "WIN"):
		return ResultVictory
	case strings.Contains(upper, "DEFEAT"),
		strings.Contains(upper, "LOSE"),
		strings.Contains(upper, "LOSS"):
		return ResultDefeat
	}
	return ResultUnknown
}

// ParseNumber returns the first run of digits in text as an integer, or the
// default when no digits are present.
func ParseNumber(text string, def int) int {
	run := digitRunRe.FindString(text)
	if run == "" {
		return def
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		// Digit runs long enough to overflow are OCR garbage.
		return def
	}
	return n
}

// ParseDuration normalizes OCR'd match duration to "m:ss". A well-formed
// mm:ss match wins; otherwise the first two digit runs are reassembled.
// With fewer than two digit runs the zero duration "00:00" is returned.
func ParseDuration(text string) string {
	if m := durationRe.FindStringSubmatch(text); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		return strconv.Itoa(minutes) + ":" + m[2]
	}

	runs := digitRunRe.FindAllString(text, 2)
	if len(runs) >= 2 {
		seconds := runs[1]
		for len(seconds) < 2 {
			seconds = "0" + seconds
		}
		return runs[0] + ":" + seconds
	}
	return "00:00"
}
