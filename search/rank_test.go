package search

import (
	"testing"

	"github.com/poiesic/hansard/catalog"
	"github.com/poiesic/hansard/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T, entries ...core.TopicEntry) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(entries)
	require.NoError(t, err)
	return c
}

func threeTopics(t *testing.T) *catalog.Catalog {
	return newCatalog(t,
		core.TopicEntry{TopicID: 0, Embedding: []float32{1, 0}, Keywords: []string{"schools"}},
		core.TopicEntry{TopicID: 1, Embedding: []float32{0, 1}, Keywords: []string{"nhs"}},
		core.TopicEntry{TopicID: 2, Embedding: []float32{0.7071, 0.7071}, Keywords: []string{"budget"}},
	)
}

func TestRankTopics_Ordering(t *testing.T) {
	c := threeTopics(t)

	results, err := RankTopics([]float32{1, 0}, c, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 0, results[0].TopicID)
	assert.InDelta(t, 1.0, results[0].Score, 1e-4)
	assert.Equal(t, 2, results[1].TopicID)
	assert.InDelta(t, 0.7071, results[1].Score, 1e-3)
	assert.Equal(t, 1, results[2].TopicID)
	assert.InDelta(t, 0.0, results[2].Score, 1e-6)
}

func TestRankTopics_TopNLargerThanCatalog(t *testing.T) {
	results, err := RankTopics([]float32{1, 0}, threeTopics(t), 5)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestRankTopics_TopNTruncates(t *testing.T) {
	results, err := RankTopics([]float32{0, 1}, threeTopics(t), 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].TopicID)
}

func TestRankTopics_NonPositiveTopN(t *testing.T) {
	for _, n := range []int{0, -3} {
		results, err := RankTopics([]float32{1, 0}, threeTopics(t), n)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}
}

func TestRankTopics_EmptyCatalog(t *testing.T) {
	results, err := RankTopics([]float32{1, 0}, newCatalog(t), 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRankTopics_IgnoresQueryMagnitude(t *testing.T) {
	c := threeTopics(t)
	a, err := RankTopics([]float32{0.2, 0.1}, c, 3)
	require.NoError(t, err)
	b, err := RankTopics([]float32{20, 10}, c, 3)
	require.NoError(t, err)
	require.Equal(t, ids(a), ids(b))
	for i := range a {
		assert.InDelta(t, a[i].Score, b[i].Score, 1e-6)
	}
}

func TestRankTopics_TiesByAscendingID(t *testing.T) {
	c := newCatalog(t,
		core.TopicEntry{TopicID: 9, Embedding: []float32{1, 0}},
		core.TopicEntry{TopicID: 4, Embedding: []float32{2, 0}},
		core.TopicEntry{TopicID: 6, Embedding: []float32{0, 1}},
	)

	results, err := RankTopics([]float32{1, 0}, c, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 9, 6}, ids(results))
}

func TestRankTopics_ZeroQuery(t *testing.T) {
	results, err := RankTopics([]float32{0, 0}, threeTopics(t), 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Zero(t, r.Score)
	}
	assert.Equal(t, []int{0, 1, 2}, ids(results))
}

func TestRankTopics_DimensionMismatch(t *testing.T) {
	_, err := RankTopics([]float32{1, 0, 0}, threeTopics(t), 3)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestRankTopics_NilCatalog(t *testing.T) {
	_, err := RankTopics([]float32{1}, nil, 3)
	assert.ErrorIs(t, err, ErrCatalogRequired)
}

func ids(results []core.SimilarityResult) []int {
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.TopicID
	}
	return out
}

func TestScoreRows_RowBlock(t *testing.T) {
	matrix := []float32{
		1, 0, 0,
		0, 2, 0,
		1, 1, 1,
		3, 0, 1,
	}
	q := []float32{1, 2, 3}
	scores := []float32{-1, -1, -1, -1}

	scoreRows(q, matrix, 3, 1, 3, scores)
	assert.Equal(t, []float32{-1, 4, 6, -1}, scores, "only rows in the block are written")

	scoreRows(q, matrix, 3, 0, 4, scores)
	assert.Equal(t, []float32{1, 4, 6, 6}, scores)
}
