package fuzzy

import (
	"cmp"
	"slices"

	"github.com/poiesic/hansard/core"
)

// Extract scores every choice against query and returns the limit best,
// highest first. Choices with equal scores keep their input order.
// A limit <= 0 returns every choice. A nil scorer selects WRatio.
func Extract(query string, choices []string, limit int, scorer Scorer) []core.NameMatch {
	if scorer == nil {
		scorer = WRatio
	}

	pq := Process(query)
	matches := make([]core.NameMatch, len(choices))
	for i, choice := range choices {
		matches[i] = core.NameMatch{Name: choice, Score: scorer(pq, choice)}
	}

	slices.SortStableFunc(matches, func(a, b core.NameMatch) int {
		return cmp.Compare(b.Score, a.Score)
	})

	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches
}
