// Package profile defines resolution profiles: named sets of percentage
// regions locating every field on an end-game screenshot for one reference
// aspect ratio.
package profile

import (
	"fmt"

	"mlbb-extractor/pkg/geometry"
)

// PlayerRegions holds the sub-regions for a single player row.
type PlayerRegions struct {
	Nickname geometry.Region  `json:"nickname"`
	Stats    geometry.Region  `json:"stats"` // kills deaths assists gold
	Medal    geometry.Region  `json:"medal"`
	Ratio    geometry.Region  `json:"ratio"`
	Hero     *geometry.Region `json:"hero,omitempty"`
}

// Profile is a complete set of regions for one reference resolution.
//
// ReferenceWidth/Height rank profiles by aspect ratio during auto-selection;
// they never rescale coordinates, which are already resolution-independent
// percentages.
type Profile struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	ReferenceWidth  int    `json:"reference_width"`
	ReferenceHeight int    `json:"reference_height"`

	ResultRegion         geometry.Region `json:"result_region"`
	MyTeamScoreRegion    geometry.Region `json:"my_team_score_region"`
	AdversaryScoreRegion geometry.Region `json:"adversary_score_region"`
	DurationRegion       geometry.Region `json:"duration_region"`

	// Players are ordered top-to-bottom (positions 1-5) and there are
	// always exactly five.
	Players []PlayerRegions `json:"players"`
}

// AspectRatio returns the reference width/height ratio.
func (p *Profile) AspectRatio() float64 {
	if p.ReferenceHeight == 0 {
		return 0
	}
	return float64(p.ReferenceWidth) / float64(p.ReferenceHeight)
}

// Validate checks structural invariants of the profile.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if len(p.Players) != PlayerCount {
		return fmt.Errorf("profile %q has %d player rows, want %d", p.Name, len(p.Players), PlayerCount)
	}
	if p.ReferenceWidth <= 0 || p.ReferenceHeight <= 0 {
		return fmt.Errorf("profile %q has invalid reference resolution %dx%d",
			p.Name, p.ReferenceWidth, p.ReferenceHeight)
	}
	return nil
}

// PlayerCount is the number of player rows on the allied side of the scoreboard.
const PlayerCount = 5
