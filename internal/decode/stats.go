package decode

import "strconv"

// StatLine is one player's kills/deaths/assists/gold block. The zero value
// is the "unparseable" sentinel.
type StatLine struct {
	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`
	Gold    int `json:"gold"`
}

// Ground-truth ranges for a single match. Values outside these bounds are
// OCR artifacts, not game results.
const (
	maxKills   = 50
	maxDeaths  = 30
	maxAssists = 50

	goldMin = 3000
	goldMax = 40000

	// Typical end-game gold. Candidates inside this band outrank ones that
	// are merely in the legal range.
	goldTypicalMin = 8000
	goldTypicalMax = 30000
)

// ParseStats recovers (kills, deaths, assists, gold) from OCR output of one
// stats block. primary and secondary are full-text renderings of the region
// under different preprocessing; words are the word-level OCR tokens of the
// primary rendering.
//
// Strategies cascade, first success wins:
//  1. four digit runs in the primary text
//  2. four digit runs in the secondary text
//  3. four numeric word tokens
//  4. smart split of the concatenated digit string (length >= 7)
//  5. splitting the first of exactly three numeric tokens into kills+deaths
//
// When nothing yields a plausible decomposition the zero StatLine is
// returned; ParseStats never fails.
func ParseStats(primary, secondary string, words []string) StatLine {
	if s, ok := firstFourRuns(primary); ok {
		return s
	}
	if s, ok := firstFourRuns(secondary); ok {
		return s
	}

	tokenNums := tokenNumbers(words)
	if len(tokenNums) >= 4 {
		return StatLine{Kills: tokenNums[0], Deaths: tokenNums[1], Assists: tokenNums[2], Gold: tokenNums[3]}
	}

	best := primary
	if best == "" {
		best = secondary
	}
	if digits := digitsOnly(best); len(digits) >= 7 {
		return SmartSplit(digits)
	}

	if len(tokenNums) == 3 {
		if s, ok := repairThreeTokens(tokenNums); ok {
			return s
		}
	}

	return StatLine{}
}

// firstFourRuns extracts the first four digit runs of text as a StatLine.
func firstFourRuns(text string) (StatLine, bool) {
	runs := digitRunRe.FindAllString(text, 4)
	if len(runs) < 4 {
		return StatLine{}, false
	}
	k, _ := strconv.Atoi(runs[0])
	d, _ := strconv.Atoi(runs[1])
	a, _ := strconv.Atoi(runs[2])
	g, _ := strconv.Atoi(runs[3])
	return StatLine{Kills: k, Deaths: d, Assists: a, Gold: g}, true
}

// tokenNumbers extracts one number per token that contains digits.
func tokenNumbers(words []string) []int {
	var nums []int
	for _, w := range words {
		digits := digitsOnly(w)
		if digits == "" {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}

func digitsOnly(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// repairThreeTokens handles the common OCR failure where kills and deaths
// merge into one token: [n0 n1 n2] becomes (K, D) = split(n0), A = n1,
// G = n2. The first split position producing in-range values wins.
func repairThreeTokens(nums []int) (StatLine, bool) {
	first := strconv.Itoa(nums[0])
	if len(first) < 2 {
		return StatLine{}, false
	}
	for _, splitAt := range []int{1, 2} {
		if splitAt >= len(first) {
			continue
		}
		k, _ := strconv.Atoi(first[:splitAt])
		d, _ := strconv.Atoi(first[splitAt:])
		a := nums[1]
		gold := nums[2]
		if k <= maxKills && d <= maxDeaths && a >= 0 && a <= maxAssists && gold >= 1000 {
			return StatLine{Kills: k, Deaths: d, Assists: a, Gold: gold}, true
		}
	}
	return StatLine{}, false
}

// SmartSplit decomposes a concatenated digit string of length >= 7 into
// (kills, deaths, assists, gold), knowing gold carries 4-5 digits. Both gold
// widths are tried (5 first); each surviving K/D/A decomposition is scored
// and the best overall candidate wins. Returns the zero StatLine when no
// decomposition lands in range.
func SmartSplit(digits string) StatLine {
	if len(digits) < 7 {
		return StatLine{}
	}

	var best StatLine
	bestScore := -1

	for _, goldLen := range []int{5, 4} {
		if len(digits) < goldLen+3 {
			continue
		}

		gold, err := strconv.Atoi(digits[len(digits)-goldLen:])
		if err != nil || gold < goldMin || gold > goldMax {
			continue
		}

		k, d, a, ok := kdaAllCombinations(digits[:len(digits)-goldLen])
		if !ok {
			continue
		}

		score := 5
		if gold >= goldTypicalMin && gold <= goldTypicalMax {
			score = 10
		}
		if score > bestScore {
			bestScore = score
			best = StatLine{Kills: k, Deaths: d, Assists: a, Gold: gold}
		}
	}

	return best
}

// kdaAllCombinations enumerates every cut of kdaStr into three non-empty
// substrings of 1-3 digits, keeps the cuts whose values are plausible game
// stats, and returns the highest-scoring one (first found wins ties).
func kdaAllCombinations(kdaStr string) (kills, deaths, assists int, ok bool) {
	length := len(kdaStr)
	if length < 3 {
		return 0, 0, 0, false
	}

	bestScore := -1 << 30
	for kLen := 1; kLen <= 3; kLen++ {
		for dLen := 1; dLen <= 3; dLen++ {
			aLen := length - kLen - dLen
			if aLen < 1 || aLen > 3 {
				continue
			}

			k, _ := strconv.Atoi(kdaStr[:kLen])
			d, _ := strconv.Atoi(kdaStr[kLen : kLen+dLen])
			a, _ := strconv.Atoi(kdaStr[kLen+dLen:])
			if k > maxKills || d > maxDeaths || a > maxAssists {
				continue
			}

			score := scoreKDA(k, d, a, kLen, dLen, aLen, length)
			if score > bestScore {
				bestScore = score
				kills, deaths, assists = k, d, a
				ok = true
			}
		}
	}
	return kills, deaths, assists, ok
}

// scoreKDA rates one K/D/A decomposition. The constants are empirically
// tuned against real screenshots; changing them changes observable decode
// outcomes.
func scoreKDA(k, d, a, kLen, dLen, aLen, length int) int {
	score := 0

	// Deaths usually trail kills + assists.
	if d < k+a {
		score += 10
	}

	// Kills and assists tend to be the same order of magnitude.
	if k > 0 && a > 0 {
		ratio := float64(max(k, a)) / float64(min(k, a))
		if ratio < 10 {
			score += 5
		}
		if ratio < 5 {
			score += 3
		}
	}

	// Balanced digit lengths beat lopsided cuts.
	variance := abs(kLen-dLen) + abs(dLen-aLen)
	score += max(5-variance*2, 0)

	// Canonical layouts for 6- and 5-digit K/D/A strings.
	if length == 6 && kLen == 2 && dLen == 2 && aLen == 2 {
		score += 5
	}
	if length == 5 && kLen == 2 && dLen == 2 && aLen == 1 {
		score += 5
	}

	// A one-digit death count of 0/1 next to double-digit kills or assists
	// usually means a digit was swallowed.
	if dLen == 1 && d <= 1 && (k >= 10 || a >= 10) {
		score -= 5
	}

	// Mid-range death counts are the most common in practice.
	if d >= 5 && d <= 15 {
		score += 3
	}

	return score
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
