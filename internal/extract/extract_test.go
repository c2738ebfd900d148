package extract

import (
	"encoding/json"
	"strings"
	"testing"

	"mlbb-extractor/internal/decode"
	"mlbb-extractor/internal/medal"
)

func TestSanitizeLabel(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"p1_nickname", "p1_nickname"},
		{"result", "result"},
		{"p2 stats/inverted", "p2_stats_inverted"},
		{"ratio:retry", "ratio_retry"},
	}
	for _, c := range cases {
		if got := sanitizeLabel(c.in); got != c.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGameRecordJSONFlattens(t *testing.T) {
	rec := GameRecord{
		PlayerStats: PlayerStats{
			Nickname: "MTF7",
			Kills:    5,
			Deaths:   3,
			Assists:  12,
			Gold:     12345,
			Medal:    medal.Gold,
			Ratio:    7.8,
			Position: 3,
		},
		MatchInfo: decode.MatchInfo{
			Result:             decode.ResultVictory,
			MyTeamScore:        25,
			AdversaryTeamScore: 18,
			Duration:           "15:32",
		},
		SourceImage: "match.png",
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"nickname":"MTF7"`, `"result":"VICTORY"`, `"duration":"15:32"`, `"gold":12345`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("marshaled record missing %s: %s", key, data)
		}
	}

	var back GameRecord
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != rec {
		t.Errorf("round trip mismatch: %+v", back)
	}
}
