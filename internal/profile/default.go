package profile

import "mlbb-extractor/pkg/geometry"

// DefaultName is the name of the built-in profile. It is always registered
// and cannot be removed.
const DefaultName = "default_2400x1080"

// Default returns the built-in profile for 2400x1080 (20:9) screenshots.
// Coordinates were calibrated against reference captures at that resolution.
func Default() *Profile {
	region := geometry.NewRegion
	hero := func(x, y, w, h float64) *geometry.Region {
		r := geometry.NewRegion(x, y, w, h)
		return &r
	}

	return &Profile{
		Name:            DefaultName,
		Description:     "Default profile for 2400x1080 (20:9 ultrawide)",
		ReferenceWidth:  2400,
		ReferenceHeight: 1080,

		ResultRegion:         region(40.02, 3.11, 19.90, 10.68),
		MyTeamScoreRegion:    region(32.48, 5.09, 4.97, 8.57),
		AdversaryScoreRegion: region(62.60, 5.22, 4.81, 7.95),
		DurationRegion:       region(77.25, 11.43, 4.58, 4.10),

		Players: []PlayerRegions{
			{
				Nickname: region(21.07, 20.80, 10.56, 5.88),
				Stats:    region(31.13, 21.99, 12.13, 4.22),
				Medal:    region(43.77, 22.61, 3.86, 7.45),
				Ratio:    region(43.77, 29.32, 3.86, 4.22),
				Hero:     hero(14.20, 21.83, 4.89, 10.73),
			},
			{
				Nickname: region(20.96, 33.59, 10.56, 5.88),
				Stats:    region(31.19, 34.53, 12.13, 4.22),
				Medal:    region(43.82, 35.16, 3.86, 7.58),
				Ratio:    region(43.71, 42.24, 3.86, 4.22),
				Hero:     hero(14.21, 34.50, 4.83, 10.73),
			},
			{
				Nickname: region(20.96, 46.49, 10.56, 5.64),
				Stats:    region(31.02, 47.58, 12.13, 4.22),
				Medal:    region(43.71, 48.20, 3.86, 7.45),
				Ratio:    region(43.71, 54.91, 3.86, 4.22),
				Hero:     hero(14.34, 47.33, 4.64, 10.58),
			},
			{
				Nickname: region(21.02, 59.41, 10.56, 5.64),
				Stats:    region(30.97, 60.25, 12.13, 4.22),
				Medal:    region(43.66, 61.37, 3.86, 7.45),
				Ratio:    region(43.77, 67.95, 3.86, 4.22),
				Hero:     hero(14.34, 59.95, 4.70, 10.87),
			},
			{
				Nickname: region(20.96, 72.21, 10.56, 5.76),
				Stats:    region(31.02, 73.04, 12.13, 4.22),
				Medal:    region(43.71, 73.54, 3.86, 7.45),
				Ratio:    region(43.71, 80.62, 3.86, 4.22),
				Hero:     hero(14.34, 72.75, 4.77, 10.87),
			},
		},
	}
}
