package sampler

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/poiesic/hansard/core"
	"github.com/poiesic/hansard/storage"
)

const (
	DefaultRowCap     = 100
	DefaultSampleSize = 5
)

var (
	// ErrStoreRequired is returned when a store is not provided.
	ErrStoreRequired = errors.New("speech store required")

	// ErrInvalidSize is returned when the row cap or sample size is not positive.
	ErrInvalidSize = errors.New("row cap and sample size must be greater than 0")
)

// Sampler draws a small uniform sample from the speeches matching a filter.
type Sampler struct {
	store      storage.SpeechStore
	rowCap     int
	sampleSize int
	rng        *rand.Rand
	rngMu      sync.Mutex
	logger     *slog.Logger
}

// Option configures a Sampler.
type Option func(*Sampler) error

// WithRowCap bounds how many matching rows are fetched before sampling.
func WithRowCap(n int) Option {
	return func(s *Sampler) error {
		if n <= 0 {
			return ErrInvalidSize
		}
		s.rowCap = n
		return nil
	}
}

// WithSampleSize sets how many rows are returned.
func WithSampleSize(n int) Option {
	return func(s *Sampler) error {
		if n <= 0 {
			return ErrInvalidSize
		}
		s.sampleSize = n
		return nil
	}
}

// WithRand sets the random source. A seeded source makes draws reproducible.
// The default is the goroutine-safe top-level source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Sampler) error {
		s.rng = rng
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sampler) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a sampler over store.
func New(store storage.SpeechStore, opts ...Option) (*Sampler, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	s := &Sampler{
		store:      store,
		rowCap:     DefaultRowCap,
		sampleSize: DefaultSampleSize,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Sample fetches up to the row cap of matching rows and returns a uniform
// sample of sampleSize of them, drawn without replacement. When fewer rows
// match, all of them are returned in store order. An empty result is not an
// error.
func (s *Sampler) Sample(ctx context.Context, table string, filters storage.Filters) ([]core.SpeechRecord, error) {
	rows, err := s.store.QuerySpeeches(ctx, table, filters, s.rowCap)
	if err != nil {
		return nil, err
	}

	if len(rows) < s.sampleSize {
		s.logger.Debug("returning all matching rows", "rows", len(rows))
		if rows == nil {
			rows = []core.SpeechRecord{}
		}
		return rows, nil
	}

	return s.draw(rows), nil
}

// draw picks sampleSize rows with a partial Fisher-Yates shuffle.
func (s *Sampler) draw(rows []core.SpeechRecord) []core.SpeechRecord {
	perm := make([]int, len(rows))
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < s.sampleSize; i++ {
		j := i + s.intN(len(perm)-i)
		perm[i], perm[j] = perm[j], perm[i]
	}

	out := make([]core.SpeechRecord, s.sampleSize)
	for i := range out {
		out[i] = rows[perm[i]]
	}
	return out
}

func (s *Sampler) intN(n int) int {
	if s.rng != nil {
		s.rngMu.Lock()
		defer s.rngMu.Unlock()
		return s.rng.IntN(n)
	}
	return rand.IntN(n)
}
