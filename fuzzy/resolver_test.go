package fuzzy

import (
	"testing"

	"github.com/poiesic/hansard/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownNames = []string{
	"Rishi Sunak",
	"Keir Starmer",
	"Boris Johnson",
	"Jane Smith",
	"Iain Duncan Smith",
	"Jonathan Smithers",
}

func TestExtract(t *testing.T) {
	matches := Extract("Jon Smith", knownNames, 3, nil)
	assert.Equal(t, []core.NameMatch{
		{Name: "Iain Duncan Smith", Score: 86},
		{Name: "Jane Smith", Score: 84},
		{Name: "Jonathan Smithers", Score: 70},
	}, matches)
}

func TestExtract_StableTies(t *testing.T) {
	matches := Extract("x", []string{"b", "a", "c"}, 0, func(a, b string) int { return 50 })
	require.Len(t, matches, 3)
	assert.Equal(t, "b", matches[0].Name)
	assert.Equal(t, "a", matches[1].Name)
	assert.Equal(t, "c", matches[2].Name)
}

func TestExtract_NoChoices(t *testing.T) {
	assert.Empty(t, Extract("Rishi", nil, 10, WRatio))
}

func TestNewResolver_Options(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		err  error
	}{
		{"zero limit", WithLimit(0), ErrInvalidLimit},
		{"low above high", WithThresholds(60, 80), ErrInvalidThreshold},
		{"high above 100", WithThresholds(101, 70), ErrInvalidThreshold},
		{"negative low", WithThresholds(90, -1), ErrInvalidThreshold},
		{"nil scorer", WithScorer(nil), ErrScorerRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(tt.opt)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	r, err := NewResolver()
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, r.limit)
	assert.Equal(t, DefaultHighThreshold, r.high)
	assert.Equal(t, DefaultLowThreshold, r.low)
}

func TestResolve_HighTier(t *testing.T) {
	r, err := NewResolver()
	require.NoError(t, err)

	assert.Equal(t, []string{"Rishi Sunak"}, r.Resolve("Rishi Sunk", knownNames))
}

func TestResolve_HighTierExcludesLowerScores(t *testing.T) {
	r, err := NewResolver()
	require.NoError(t, err)

	// John Smith scores 95, Jane Smith 84 which would pass the low tier.
	got := r.Resolve("Jon Smith", []string{"Jane Smith", "John Smith"})
	assert.Equal(t, []string{"John Smith"}, got)
}

func TestResolve_FallsBackToLowTier(t *testing.T) {
	r, err := NewResolver()
	require.NoError(t, err)

	got := r.Matches("Jon Smith", knownNames)
	assert.Equal(t, []core.NameMatch{
		{Name: "Iain Duncan Smith", Score: 86},
		{Name: "Jane Smith", Score: 84},
		{Name: "Jonathan Smithers", Score: 70},
	}, got)
}

func TestResolve_NoMatch(t *testing.T) {
	r, err := NewResolver()
	require.NoError(t, err)

	got := r.Resolve("zzzzz", []string{"Rishi Sunak", "Keir Starmer"})
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, r.Resolve("Rishi", nil))
}

func TestResolve_LimitAppliesBeforeThreshold(t *testing.T) {
	r, err := NewResolver(WithLimit(1))
	require.NoError(t, err)

	got := r.Resolve("Jon Smith", knownNames)
	assert.Equal(t, []string{"Iain Duncan Smith"}, got)
}

func TestResolve_CustomScorer(t *testing.T) {
	exact := func(a, b string) int {
		if Process(a) == Process(b) {
			return 100
		}
		return 0
	}
	r, err := NewResolver(WithScorer(exact))
	require.NoError(t, err)

	assert.Equal(t, []string{"Keir Starmer"}, r.Resolve("keir starmer", knownNames))
	assert.Empty(t, r.Resolve("Keir", knownNames))
}
