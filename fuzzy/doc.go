// Package fuzzy resolves free-text names against a catalog of known names.
//
// Scores run from 0 to 100 and are computed on processed strings (see
// Process) from the insertion/deletion edit distance. WRatio, the default,
// blends whole-string, partial, token-sorted and token-set comparisons so
// that typos, reordered words and extra words all still match.
//
//	r, _ := fuzzy.NewResolver()
//	r.Resolve("Rishi Sunk", []string{"Rishi Sunak", "Keir Starmer"}) // ["Rishi Sunak"]
package fuzzy
