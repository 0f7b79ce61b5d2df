package fuzzy

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Scorer rates the similarity of two strings from 0 (nothing in common) to 100.
type Scorer func(a, b string) int

const (
	unbaseScale      = 0.95
	partialScale     = 0.9
	longPartialScale = 0.6
	partialLenRatio  = 1.5
	longLenRatio     = 8.0
)

// Ratio is the normalized insertion/deletion similarity of the processed strings.
func Ratio(a, b string) int {
	return round(ratio(Process(a), Process(b)))
}

// PartialRatio scores the best alignment of the shorter string against
// any equally long window of the longer one.
func PartialRatio(a, b string) int {
	return round(partialRatio(Process(a), Process(b)))
}

// TokenSortRatio compares the strings after sorting their tokens, so word
// order does not matter.
func TokenSortRatio(a, b string) int {
	return round(ratio(sortedTokens(Process(a)), sortedTokens(Process(b))))
}

// TokenSetRatio compares the shared tokens against each side's remainder,
// so repeated or extra words weigh less.
func TokenSetRatio(a, b string) int {
	return round(tokenSetRatio(Process(a), Process(b)))
}

// PartialTokenSortRatio is PartialRatio over token-sorted strings.
func PartialTokenSortRatio(a, b string) int {
	return round(partialRatio(sortedTokens(Process(a)), sortedTokens(Process(b))))
}

// PartialTokenSetRatio is 100 when the strings share any token, otherwise
// the PartialRatio of their sorted tokens.
func PartialTokenSetRatio(a, b string) int {
	return round(partialTokenSetRatio(Process(a), Process(b)))
}

// WRatio combines the other scorers, weighting partial matches down and
// only using them when one string is markedly longer than the other.
// It is the default scorer for name resolution.
func WRatio(a, b string) int {
	return round(weightedRatio(Process(a), Process(b)))
}

func ratio(a, b string) float64 {
	return normalizedSimilarity(a, b)
}

func partialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	m, n := len(short), len(long)
	if m == 0 {
		return 0
	}
	s := string(short)

	best := 0.0
	consider := func(window []rune) bool {
		if score := normalizedSimilarity(s, string(window)); score > best {
			best = score
		}
		return best == 100
	}

	// Partial overlaps at either edge, then every full-length window.
	for k := 1; k < m; k++ {
		if consider(long[:k]) || consider(long[n-k:]) {
			return best
		}
	}
	for start := 0; start+m <= n; start++ {
		if consider(long[start : start+m]) {
			return best
		}
	}
	return best
}

func sortedTokens(s string) string {
	t := tokens(s)
	slices.Sort(t)
	return strings.Join(t, " ")
}

// tokenSets returns the sorted intersection and the sorted differences a-b and b-a.
func tokenSets(a, b string) (sect, diffAB, diffBA []string, ok bool) {
	ta, tb := tokens(a), tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return nil, nil, nil, false
	}

	inB := make(map[string]bool, len(tb))
	for _, t := range tb {
		inB[t] = true
	}
	inA := make(map[string]bool, len(ta))
	for _, t := range ta {
		inA[t] = true
	}

	for t := range inA {
		if inB[t] {
			sect = append(sect, t)
		} else {
			diffAB = append(diffAB, t)
		}
	}
	for t := range inB {
		if !inA[t] {
			diffBA = append(diffBA, t)
		}
	}
	slices.Sort(sect)
	slices.Sort(diffAB)
	slices.Sort(diffBA)
	return sect, diffAB, diffBA, true
}

func tokenSetRatio(a, b string) float64 {
	sect, diffAB, diffBA, ok := tokenSets(a, b)
	if !ok {
		return 0
	}
	if len(sect) > 0 && (len(diffAB) == 0 || len(diffBA) == 0) {
		return 100
	}

	s := strings.Join(sect, " ")
	c1 := strings.TrimSpace(s + " " + strings.Join(diffAB, " "))
	c2 := strings.TrimSpace(s + " " + strings.Join(diffBA, " "))

	return max(ratio(s, c1), ratio(s, c2), ratio(c1, c2))
}

func partialTokenSetRatio(a, b string) float64 {
	sect, diffAB, diffBA, ok := tokenSets(a, b)
	if !ok {
		return 0
	}
	if len(sect) > 0 {
		return 100
	}
	return partialRatio(strings.Join(diffAB, " "), strings.Join(diffBA, " "))
}

func weightedRatio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 || lb == 0 {
		return 0
	}

	base := ratio(a, b)
	lenRatio := float64(max(la, lb)) / float64(min(la, lb))

	if lenRatio < partialLenRatio {
		tsor := ratio(sortedTokens(a), sortedTokens(b)) * unbaseScale
		tser := tokenSetRatio(a, b) * unbaseScale
		return max(base, tsor, tser)
	}

	scale := partialScale
	if lenRatio > longLenRatio {
		scale = longPartialScale
	}
	partial := partialRatio(a, b) * scale
	ptsor := partialRatio(sortedTokens(a), sortedTokens(b)) * unbaseScale * scale
	ptser := partialTokenSetRatio(a, b) * unbaseScale * scale
	return max(base, partial, ptsor, ptser)
}
