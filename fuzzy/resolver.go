package fuzzy

import "github.com/poiesic/hansard/core"

const (
	DefaultLimit         = 100
	DefaultHighThreshold = 90
	DefaultLowThreshold  = 70
)

// Resolver maps a free-text name to known names using a two-tier threshold.
//
// The best Limit candidates are scored once. Those at or above the high
// threshold are returned; if there are none, those at or above the low
// threshold are returned instead. No candidate passing either tier is a
// normal outcome and yields an empty slice.
type Resolver struct {
	limit  int
	high   int
	low    int
	scorer Scorer
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithLimit sets how many top candidates are considered.
func WithLimit(limit int) Option {
	return func(r *Resolver) error {
		if limit <= 0 {
			return ErrInvalidLimit
		}
		r.limit = limit
		return nil
	}
}

// WithThresholds sets the high and low score tiers.
func WithThresholds(high, low int) Option {
	return func(r *Resolver) error {
		if high < 0 || high > 100 || low < 0 || low > 100 || low > high {
			return ErrInvalidThreshold
		}
		r.high = high
		r.low = low
		return nil
	}
}

// WithScorer replaces the default WRatio scorer.
func WithScorer(scorer Scorer) Option {
	return func(r *Resolver) error {
		if scorer == nil {
			return ErrScorerRequired
		}
		r.scorer = scorer
		return nil
	}
}

// NewResolver creates a resolver with limit 100 and thresholds 90/70 unless overridden.
func NewResolver(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		limit:  DefaultLimit,
		high:   DefaultHighThreshold,
		low:    DefaultLowThreshold,
		scorer: WRatio,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Resolve returns the known names matching query, best first.
func (r *Resolver) Resolve(query string, known []string) []string {
	return names(r.Matches(query, known))
}

// Matches is Resolve with scores attached.
func (r *Resolver) Matches(query string, known []string) []core.NameMatch {
	candidates := Extract(query, known, r.limit, r.scorer)

	out := atLeast(candidates, r.high)
	if len(out) == 0 {
		out = atLeast(candidates, r.low)
	}
	return out
}

func atLeast(matches []core.NameMatch, threshold int) []core.NameMatch {
	out := []core.NameMatch{}
	for _, m := range matches {
		if m.Score >= threshold {
			out = append(out, m)
		}
	}
	return out
}

func names(matches []core.NameMatch) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Name
	}
	return out
}
