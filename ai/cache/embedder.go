package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/hansard/ai"
)

// Embedder wraps an ai.Embedder and persists its vectors in BadgerDB.
// Only misses reach the wrapped embedder.
type Embedder struct {
	inner  ai.Embedder
	db     *badger.DB
	model  string
	logger *slog.Logger
	closed atomic.Bool
	hits   atomic.Int64
	misses atomic.Int64
}

var _ ai.Embedder = (*Embedder)(nil)

// Option configures an Embedder.
type Option func(*Embedder) error

// WithLogger sets the logger. A nil logger selects slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Embedder) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithModel namespaces cache entries by embedding model.
func WithModel(model string) Option {
	return func(e *Embedder) error {
		e.model = model
		return nil
	}
}

// New opens a cache in dir around inner. An empty dir keeps the cache in memory.
func New(inner ai.Embedder, dir string, opts ...Option) (*Embedder, error) {
	if inner == nil {
		return nil, ErrEmbedderRequired
	}

	e := &Embedder{
		inner:  inner,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	db, err := openDB(dir, e.logger)
	if err != nil {
		return nil, fmt.Errorf("opening embedding cache: %w", err)
	}
	e.db = db
	e.logger = e.logger.With("component", "embedding-cache")
	return e, nil
}

// EmbedText returns the cached vector for text, embedding and storing it on a miss.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts resolves each text from the cache and embeds the misses in one batch.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if e.closed.Load() {
		return nil, ErrCacheClosed
	}

	results := make([][]float32, len(texts))
	var missing []int

	err := e.db.View(func(txn *badger.Txn) error {
		for i, text := range texts {
			item, err := txn.Get(cacheKey(e.model, text))
			if errors.Is(err, badger.ErrKeyNotFound) {
				missing = append(missing, i)
				continue
			}
			if err != nil {
				return err
			}
			var vec []float32
			err = item.Value(func(val []byte) error {
				vec, err = decodeVector(val)
				return err
			})
			if err != nil {
				e.logger.Warn("dropping unreadable cache entry", "err", err)
				missing = append(missing, i)
				continue
			}
			results[i] = vec
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading embedding cache: %w", err)
	}

	e.hits.Add(int64(len(texts) - len(missing)))
	e.misses.Add(int64(len(missing)))
	if len(missing) == 0 {
		return results, nil
	}

	pending := make([]string, len(missing))
	for j, i := range missing {
		pending[j] = texts[i]
	}
	e.logger.Debug("embedding cache misses", "count", len(pending))

	vectors, err := e.inner.EmbedTexts(ctx, pending)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(pending) {
		return nil, fmt.Errorf("%w: expected %d vectors, got %d", ai.ErrEmbeddingFailed, len(pending), len(vectors))
	}

	wb := e.db.NewWriteBatch()
	for j, i := range missing {
		results[i] = vectors[j]
		if err := wb.Set(cacheKey(e.model, pending[j]), encodeVector(vectors[j])); err != nil {
			wb.Cancel()
			return nil, fmt.Errorf("writing embedding cache: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		// The vectors are still good; only persistence failed.
		e.logger.Warn("failed to persist embeddings", "count", len(pending), "err", err)
	}

	return results, nil
}

// Stats returns the number of cache hits and misses since the cache was opened.
func (e *Embedder) Stats() (hits, misses int64) {
	return e.hits.Load(), e.misses.Load()
}

// Close closes the underlying database. The wrapped embedder is not closed.
func (e *Embedder) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	return e.db.Close()
}
