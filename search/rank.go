package search

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/poiesic/hansard/catalog"
	"github.com/poiesic/hansard/core"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// RankTopics scores query against every catalog entry by cosine similarity
// and returns the topN best, highest first. Equal scores are ordered by
// ascending topic id.
//
// topN <= 0 and an empty catalog both return an empty result. A zero query
// vector scores every topic 0.
func RankTopics(query []float32, cat *catalog.Catalog, topN int) ([]core.SimilarityResult, error) {
	if cat == nil {
		return nil, ErrCatalogRequired
	}
	if topN <= 0 || cat.Len() == 0 {
		return []core.SimilarityResult{}, nil
	}
	if err := checkDimension(query, cat); err != nil {
		return nil, err
	}

	q := catalog.NormalizeVector(query)
	scores := make([]float32, cat.Len())
	scoreRows(q, cat.Matrix(), cat.Dimension(), 0, cat.Len(), scores)
	return selectTop(scores, cat, topN), nil
}

func checkDimension(query []float32, cat *catalog.Catalog) error {
	if len(query) != cat.Dimension() {
		return fmt.Errorf("%w: query has %d values, catalog has %d", ErrDimensionMismatch, len(query), cat.Dimension())
	}
	return nil
}

// scoreRows writes the product of rows [lo, hi) of matrix with q into
// scores[lo:hi] as one matrix-vector multiply.
func scoreRows(q, matrix []float32, dim, lo, hi int, scores []float32) {
	if hi <= lo || dim == 0 {
		return
	}
	rows := hi - lo
	a := blas32.General{Rows: rows, Cols: dim, Stride: dim, Data: matrix[lo*dim : hi*dim]}
	x := blas32.Vector{N: dim, Inc: 1, Data: q}
	y := blas32.Vector{N: rows, Inc: 1, Data: scores[lo:hi]}
	blas32.Gemv(blas.NoTrans, 1, a, x, 0, y)
}

// selectTop orders rows by score and returns the first topN as results.
func selectTop(scores []float32, cat *catalog.Catalog, topN int) []core.SimilarityResult {
	results := make([]core.SimilarityResult, len(scores))
	for i, s := range scores {
		results[i] = core.SimilarityResult{TopicID: cat.TopicIDAt(i), Score: s}
	}

	slices.SortFunc(results, func(a, b core.SimilarityResult) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.TopicID, b.TopicID)
	})

	if topN < len(results) {
		results = results[:topN]
	}
	return results
}
