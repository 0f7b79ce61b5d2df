// Package explore answers explore requests: it maps a free-text query to
// the nearest topics, lists each topic's keywords, and returns a small
// random sample of speeches filtered by topic, year, party and speaker.
//
// Speaker names are matched exactly by default. WithFuzzyNames expands a
// name to the known speakers a fuzzy.Resolver accepts, so misspellings such
// as "Rishi Sunk" still find speeches.
package explore
