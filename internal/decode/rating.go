package decode

import (
	"strconv"
	"strings"
)

// Performance ratings always render with one decimal place inside this band.
const (
	ratingMin = 3.0
	ratingMax = 20.0
)

// ParseRating recovers a one-decimal performance rating from OCR text.
//
// A literal decimal point is trusted first, with the fractional part
// truncated to one digit. Without a point, the digit string is reinterpreted
// by length; four or more digits try the statistically most reliable
// substrings first (middle digits from the scaled OCR pass, then tail, then
// head). Candidates outside [3.0, 20.0] are discarded; if none survive, the
// caller's default is returned.
func ParseRating(text string, def float64) float64 {
	digits := digitsOnly(text)
	if digits == "" {
		return def
	}

	if strings.Contains(text, ".") {
		if v, ok := ratingFromDecimal(text); ok {
			return v
		}
	}

	switch len(digits) {
	case 1:
		if v, ok := ratingValue(digits, ""); ok {
			return v
		}
	case 2:
		if v, ok := ratingValue(digits[:1], digits[1:]); ok {
			return v
		}
	case 3:
		if v, ok := ratingValue(digits[:2], digits[2:]); ok {
			return v
		}
		if v, ok := ratingValue(digits[:1], digits[1:2]); ok {
			return v
		}
	default:
		// Candidate substrings in decreasing order of OCR reliability.
		candidates := [][2]string{
			{digits[1:2], digits[2:3]}, // middle two
			{digits[len(digits)-2 : len(digits)-1], digits[len(digits)-1:]}, // last two
			{digits[len(digits)-3 : len(digits)-1], digits[len(digits)-1:]}, // last three
			{digits[:1], digits[1:2]},  // first two
			{digits[:2], digits[2:3]},  // first three
		}
		for _, c := range candidates {
			if v, ok := ratingValue(c[0], c[1]); ok {
				return v
			}
		}
	}

	return def
}

// ratingFromDecimal parses text that carries a literal decimal point,
// truncating the fraction to its first digit.
func ratingFromDecimal(text string) (float64, bool) {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)

	parts := strings.Split(clean, ".")
	if len(parts) != 2 {
		return 0, false
	}
	frac := "0"
	if parts[1] != "" {
		frac = parts[1][:1]
	}
	return ratingValue(parts[0], frac)
}

// ratingValue assembles integerPart.decimalDigit and range-checks it.
func ratingValue(integerPart, decimalDigit string) (float64, bool) {
	if decimalDigit == "" {
		decimalDigit = "0"
	}
	v, err := strconv.ParseFloat(integerPart+"."+decimalDigit, 64)
	if err != nil {
		return 0, false
	}
	if v < ratingMin || v > ratingMax {
		return 0, false
	}
	return v, true
}
