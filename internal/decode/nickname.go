package decode

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// similarityThreshold is the minimum character-set Jaccard similarity for
// two nicknames to count as the same player.
const similarityThreshold = 0.6

var (
	leadingSymbolsRe  = regexp.MustCompile("^[@#$%^&*()_+=\\[\\]{}|\\\\<>/?`~]+")
	trailingSymbolsRe = regexp.MustCompile("[@#$%^&*()_+=\\[\\]{}|\\\\<>/?`~]+$")
	multiSpaceRe      = regexp.MustCompile(`\s+`)
)

// CleanNickname normalizes raw OCR nickname text: symbol runs at either end
// are stripped and line breaks collapse to single spaces, joining a clan tag
// line with the nickname line.
func CleanNickname(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = leadingSymbolsRe.ReplaceAllString(cleaned, "")
	cleaned = trailingSymbolsRe.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", "")
	cleaned = multiSpaceRe.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// NicknameMatcher locates a target player among OCR'd row nicknames. An
// optional alias table maps raw OCR forms to canonical nicknames; it is
// applied in both directions and is read-only after construction.
type NicknameMatcher struct {
	aliases map[string]string
}

// NewNicknameMatcher creates a matcher. aliases may be nil.
func NewNicknameMatcher(aliases map[string]string) *NicknameMatcher {
	return &NicknameMatcher{aliases: aliases}
}

// aliasFile is the on-disk JSON layout of a nickname alias table.
type aliasFile struct {
	Mappings map[string]string `json:"mappings"`
}

// LoadAliases reads a {raw: canonical} nickname table from a JSON file.
func LoadAliases(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	var af aliasFile
	if err := json.Unmarshal(data, &af); err != nil {
		return nil, fmt.Errorf("parse aliases %s: %w", path, err)
	}
	return af.Mappings, nil
}

// Canonical applies the alias table to an OCR'd nickname, returning the
// canonical form when a mapping exists.
func (m *NicknameMatcher) Canonical(nickname string) string {
	if mapped, ok := m.aliases[nickname]; ok {
		return mapped
	}
	return nickname
}

// FindPlayer scans row nicknames in position order and returns the index of
// the first row matching the target, or (-1, false) when no row matches.
//
// A row matches when either string contains the other (case-folded), or when
// their character sets reach the Jaccard similarity threshold. Alias-mapped
// equivalents of the target are tried with the same rules.
func (m *NicknameMatcher) FindPlayer(target string, rows []string) (int, bool) {
	targets := m.expandTarget(target)

	for idx, row := range rows {
		rowFolded := fold(row)
		for _, t := range targets {
			if t == "" || rowFolded == "" {
				continue
			}
			if strings.Contains(rowFolded, t) || strings.Contains(t, rowFolded) {
				return idx, true
			}
			if similarNames(t, rowFolded) {
				return idx, true
			}
		}
	}
	return -1, false
}

// expandTarget returns the case-folded target plus its alias equivalents in
// both directions.
func (m *NicknameMatcher) expandTarget(target string) []string {
	t := fold(target)
	targets := []string{t}
	for raw, canonical := range m.aliases {
		switch {
		case fold(canonical) == t:
			targets = append(targets, fold(raw))
		case fold(raw) == t:
			targets = append(targets, fold(canonical))
		}
	}
	return targets
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// similarNames compares the character sets of two names: the size of their
// intersection over the size of their union (presence, not counts).
func similarNames(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	setA := map[rune]struct{}{}
	for _, r := range a {
		setA[r] = struct{}{}
	}
	setB := map[rune]struct{}{}
	for _, r := range b {
		setB[r] = struct{}{}
	}

	intersection := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return false
	}
	return float64(intersection)/float64(union) >= similarityThreshold
}
