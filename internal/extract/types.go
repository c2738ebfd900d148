// Package extract composes the region model, preprocessing, OCR and the
// decoders into per-screenshot extraction operations.
package extract

import (
	"errors"

	"mlbb-extractor/internal/decode"
	"mlbb-extractor/internal/medal"
)

// ErrPlayerNotFound reports that the requested nickname matched none of the
// five player rows. It is an expected outcome, not a failure of the caller's
// input.
var ErrPlayerNotFound = errors.New("player not found in screenshot")

// PlayerStats holds one player's decoded row.
type PlayerStats struct {
	Nickname string     `json:"nickname"`
	Kills    int        `json:"kills"`
	Deaths   int        `json:"deaths"`
	Assists  int        `json:"assists"`
	Gold     int        `json:"gold"`
	Medal    medal.Type `json:"medal"`
	Ratio    float64    `json:"ratio"`
	Position int        `json:"position"` // 1-5 top to bottom
}

// GameRecord is the complete result for one player in one screenshot: the
// player's row plus the match summary. Records are built once per extraction
// call and never mutated afterwards.
type GameRecord struct {
	PlayerStats
	decode.MatchInfo
	SourceImage string `json:"source_image,omitempty"`
}
