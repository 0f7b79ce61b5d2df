package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Process normalizes s for comparison: compatibility decomposition with
// combining marks removed, lower case, every non-alphanumeric rune replaced
// by a space, and surrounding whitespace trimmed.
//
// "Zoë O'Brien" becomes "zoe o brien".
func Process(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFKD.String(s) {
		switch {
		case unicode.Is(unicode.Mn, r):
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

// tokens splits a processed string on whitespace.
func tokens(s string) []string {
	return strings.Fields(s)
}
