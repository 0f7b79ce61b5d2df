package search

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/hansard/ai"
	"github.com/poiesic/hansard/catalog"
	"github.com/poiesic/hansard/core"
)

// Catalogs with at least this many rows are scored in shards on the pool.
const defaultShardSize = 4096

// Retriever maps free-text queries to the nearest catalog topics.
// It is safe for concurrent use.
type Retriever struct {
	catalog   *catalog.Catalog
	embedder  ai.Embedder
	pool      *ants.Pool
	shardSize int
	logger    *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size used to score large catalogs.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Retriever) error {
		if size < 1 {
			size = 1
		}

		if r.pool != nil {
			r.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithShardSize sets how many catalog rows one pool task scores.
func WithShardSize(rows int) Option {
	return func(r *Retriever) error {
		if rows <= 0 {
			return ErrInvalidShardSize
		}
		r.shardSize = rows
		return nil
	}
}

// NewRetriever creates a retriever over cat using embedder to encode queries.
func NewRetriever(cat *catalog.Catalog, embedder ai.Embedder, opts ...Option) (*Retriever, error) {
	if cat == nil {
		return nil, ErrCatalogRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := max(runtime.NumCPU()/2, 1)
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Retriever{
		catalog:   cat,
		embedder:  embedder,
		pool:      pool,
		shardSize: defaultShardSize,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.Release()
			return nil, err
		}
	}

	return r, nil
}

// Catalog returns the catalog the retriever ranks against.
func (r *Retriever) Catalog() *catalog.Catalog {
	return r.catalog
}

// FindTopics encodes text and returns its topN nearest topics.
func (r *Retriever) FindTopics(ctx context.Context, text string, topN int) ([]core.SimilarityResult, error) {
	if topN <= 0 || r.catalog.Len() == 0 {
		return []core.SimilarityResult{}, nil
	}

	query, err := r.embedder.EmbedText(ctx, text)
	if err != nil {
		r.logger.Error("error generating embedding for query", "query", text, "err", err)
		return nil, err
	}

	return r.Rank(query, topN)
}

// FindTopicsBatch encodes all texts in one request and ranks each.
// Results are in the same order as texts.
func (r *Retriever) FindTopicsBatch(ctx context.Context, texts []string, topN int) ([][]core.SimilarityResult, error) {
	out := make([][]core.SimilarityResult, len(texts))
	if len(texts) == 0 {
		return out, nil
	}
	if topN <= 0 || r.catalog.Len() == 0 {
		for i := range out {
			out[i] = []core.SimilarityResult{}
		}
		return out, nil
	}

	queries, err := r.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		r.logger.Error("error generating embeddings for queries", "count", len(texts), "err", err)
		return nil, err
	}

	for i, q := range queries {
		if out[i], err = r.Rank(q, topN); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Rank behaves like RankTopics against the retriever's catalog, scoring large
// catalogs in parallel shards.
func (r *Retriever) Rank(query []float32, topN int) ([]core.SimilarityResult, error) {
	n := r.catalog.Len()
	if n < r.shardSize {
		return RankTopics(query, r.catalog, topN)
	}
	if topN <= 0 {
		return []core.SimilarityResult{}, nil
	}
	if err := checkDimension(query, r.catalog); err != nil {
		return nil, err
	}

	q := catalog.NormalizeVector(query)
	matrix := r.catalog.Matrix()
	dim := r.catalog.Dimension()
	scores := make([]float32, n)

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += r.shardSize {
		hi := min(lo+r.shardSize, n)
		wg.Add(1)
		task := func() {
			defer wg.Done()
			scoreRows(q, matrix, dim, lo, hi, scores)
		}
		if err := r.pool.Submit(task); err != nil {
			r.logger.Warn("pool rejected shard, scoring inline", "lo", lo, "hi", hi, "err", err)
			task()
		}
	}
	wg.Wait()

	return selectTop(scores, r.catalog, topN), nil
}

// Release releases the worker pool.
// The retriever should not be used after calling Release.
func (r *Retriever) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
