package fuzzy

import (
	"math"
	"unicode/utf8"

	"github.com/xrash/smetrics"
)

// indel returns the insertion/deletion edit distance between a and b,
// counted in runes. A substitution costs the same as a delete plus an insert.
func indel(a, b string) int {
	ea, eb := encodePair(a, b)
	return smetrics.WagnerFischer(ea, eb, 1, 1, 2)
}

// encodePair rewrites a and b so each rune becomes a single byte, letting a
// byte-oriented distance count runes. ASCII input is returned as is. If the
// pair uses more than 256 distinct runes the original bytes are used.
func encodePair(a, b string) (string, string) {
	if isASCII(a) && isASCII(b) {
		return a, b
	}

	codes := make(map[rune]byte)
	encode := func(s string) ([]byte, bool) {
		out := make([]byte, 0, utf8.RuneCountInString(s))
		for _, r := range s {
			c, ok := codes[r]
			if !ok {
				if len(codes) == 256 {
					return nil, false
				}
				c = byte(len(codes))
				codes[r] = c
			}
			out = append(out, c)
		}
		return out, true
	}

	ea, ok := encode(a)
	if !ok {
		return a, b
	}
	eb, ok := encode(b)
	if !ok {
		return a, b
	}
	return string(ea), string(eb)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// normalizedSimilarity is 100 * (1 - indel / (len(a) + len(b))), in runes.
// Either string being empty scores 0.
func normalizedSimilarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0
	}
	return 100 * (1 - float64(indel(a, b))/float64(la+lb))
}

// round matches the half-to-even rounding used by the reference scorers.
func round(x float64) int {
	return int(math.RoundToEven(x))
}
