package decode

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestCleanNickname(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"  player1  ", "player1"},
		{"@@player1##", "player1"},
		// Leading "[" counts as a symbol run; the closing bracket survives
		// because "7" ends the string.
		{"[MTF]\nMTF7", "MTF] MTF7"},
		{"clan\ntag", "clan tag"},
		{"a   b\r", "a b"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanNickname(tt.text); got != tt.want {
			t.Errorf("CleanNickname(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestFindPlayerSubstring(t *testing.T) {
	m := NewNicknameMatcher(nil)
	rows := []string{"alpha", "bravo", "[MTF] MTF7", "delta", "echo"}
	idx, ok := m.FindPlayer("MTF7", rows)
	if !ok || idx != 2 {
		t.Fatalf("got (%d, %v), want (2, true)", idx, ok)
	}
}

func TestFindPlayerJaccardFallback(t *testing.T) {
	m := NewNicknameMatcher(nil)
	// "MTF-" shares 3 of 5 distinct characters with "MTF7" (m, t, f vs
	// union {m,t,f,7,-}) - at exactly the 0.6 threshold.
	rows := []string{"aaaa", "MTF-", "cccc", "dddd", "eeee"}
	idx, ok := m.FindPlayer("MTF7", rows)
	if !ok || idx != 1 {
		t.Fatalf("got (%d, %v), want (1, true)", idx, ok)
	}
}

func TestFindPlayerNotFound(t *testing.T) {
	m := NewNicknameMatcher(nil)
	rows := []string{"alpha", "bravo", "charlie", "delta", "echo"}
	if idx, ok := m.FindPlayer("zzzzzz", rows); ok {
		t.Fatalf("expected not found, got index %d", idx)
	}
}

func TestFindPlayerFirstRowWins(t *testing.T) {
	m := NewNicknameMatcher(nil)
	rows := []string{"player7", "player7", "x", "y", "z"}
	idx, ok := m.FindPlayer("player7", rows)
	if !ok || idx != 0 {
		t.Fatalf("got (%d, %v), want (0, true)", idx, ok)
	}
}

func TestFindPlayerAliasBothDirections(t *testing.T) {
	aliases := map[string]string{"pl4yer": "player"}
	m := NewNicknameMatcher(aliases)

	// Target is the canonical form; the row carries the raw OCR form.
	rows := []string{"aaaa", "bbbb", "pl4yer", "dddd", "eeee"}
	if idx, ok := m.FindPlayer("player", rows); !ok || idx != 2 {
		t.Fatalf("canonical->raw: got (%d, %v)", idx, ok)
	}

	// Target is the raw form; the row carries the canonical form.
	rows = []string{"player", "bbbb", "cccc", "dddd", "eeee"}
	if idx, ok := m.FindPlayer("pl4yer", rows); !ok || idx != 0 {
		t.Fatalf("raw->canonical: got (%d, %v)", idx, ok)
	}
}

func TestCanonical(t *testing.T) {
	m := NewNicknameMatcher(map[string]string{"N1ck": "Nick"})
	if got := m.Canonical("N1ck"); got != "Nick" {
		t.Fatalf("got %q", got)
	}
	if got := m.Canonical("other"); got != "other" {
		t.Fatalf("unmapped nickname changed: %q", got)
	}
}

func TestLoadAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nickname_mappings.json")
	content, _ := json.Marshal(map[string]any{
		"mappings": map[string]string{"raw": "canonical"},
	})
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	aliases, err := LoadAliases(path)
	if err != nil {
		t.Fatal(err)
	}
	if aliases["raw"] != "canonical" {
		t.Fatalf("unexpected aliases: %v", aliases)
	}

	if _, err := LoadAliases(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSimilarNames(t *testing.T) {
	if !similarNames("mtf7", "mtf-") {
		t.Fatal("3/5 shared characters should reach the 0.6 threshold")
	}
	if similarNames("abc", "xyz") {
		t.Fatal("disjoint character sets must not match")
	}
	if similarNames("", "abc") {
		t.Fatal("empty name never matches")
	}
}
