package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/hansard/ai"
	"github.com/poiesic/hansard/core"
	"github.com/poiesic/hansard/retry"
	"gopkg.in/yaml.v3"
)

const (
	defaultBatchSize   = 32
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
)

// TopicSpec is a topic awaiting an embedding.
type TopicSpec struct {
	TopicID  int      `yaml:"topic_id" json:"topic_id"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// LoadTopicSpecs reads a YAML (or JSON) list of topic specs from path.
func LoadTopicSpecs(path string) ([]TopicSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var specs []TopicSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parsing topic list %s: %w", path, err)
	}
	return specs, nil
}

// Builder embeds topic keyword lists into catalog entries.
type Builder struct {
	embedder    ai.Embedder
	batchSize   int
	maxAttempts int
	baseDelay   time.Duration
	progress    io.Writer
	logger      *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder) error

// WithBatchSize sets how many topics are embedded per request.
func WithBatchSize(size int) BuilderOption {
	return func(b *Builder) error {
		if size <= 0 {
			return ErrInvalidBatchSize
		}
		b.batchSize = size
		return nil
	}
}

// WithRetry sets the retry policy applied to each embedding batch.
func WithRetry(maxAttempts int, baseDelay time.Duration) BuilderOption {
	return func(b *Builder) error {
		if maxAttempts <= 0 {
			return retry.ErrInvalidMaxAttempts
		}
		b.maxAttempts = maxAttempts
		b.baseDelay = baseDelay
		return nil
	}
}

// WithProgress reports progress to w.
func WithProgress(w io.Writer) BuilderOption {
	return func(b *Builder) error {
		b.progress = w
		return nil
	}
}

// WithBuilderLogger sets the logger. A nil logger selects slog.Default().
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a catalog builder around embedder.
func NewBuilder(embedder ai.Embedder, opts ...BuilderOption) (*Builder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	b := &Builder{
		embedder:    embedder,
		batchSize:   defaultBatchSize,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		progress:    io.Discard,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// TopicText is the text embedded for a topic.
func TopicText(keywords []string) string {
	return strings.Join(keywords, " ")
}

// Build embeds every TopicSpec and returns the validated entries in input order.
func (b *Builder) Build(ctx context.Context, specs []TopicSpec) ([]core.TopicEntry, error) {
	seen := make(map[int]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.TopicID] {
			return nil, fmt.Errorf("%w: duplicate topic id %d", ErrCatalogLoad, spec.TopicID)
		}
		seen[spec.TopicID] = true
		if len(spec.Keywords) == 0 {
			return nil, fmt.Errorf("%w: topic %d has no keywords", ErrCatalogLoad, spec.TopicID)
		}
	}

	tracker := NewProgressTracker(b.progress, len(specs), b.batchSize)
	tracker.Start()

	policy := retry.Policy{MaxAttempts: b.maxAttempts, BaseDelay: b.baseDelay, Logger: b.logger}
	entries := make([]core.TopicEntry, 0, len(specs))

	for start := 0; start < len(specs); start += b.batchSize {
		batch := specs[start:min(start+b.batchSize, len(specs))]
		texts := make([]string, len(batch))
		for i, spec := range batch {
			texts[i] = TopicText(spec.Keywords)
		}

		var vectors [][]float32
		err := policy.Do(ctx, func() error {
			var err error
			vectors, err = b.embedder.EmbedTexts(ctx, texts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("embedding topics %d-%d after %d attempts: %w", start, start+len(batch)-1, b.maxAttempts, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(vectors))
		}

		for i, spec := range batch {
			entries = append(entries, core.TopicEntry{
				TopicID:   spec.TopicID,
				Embedding: vectors[i],
				Keywords:  spec.Keywords,
			})
		}
		tracker.Increment(len(batch))
		b.logger.Debug("embedded topic batch", "start", start, "size", len(batch))
	}

	tracker.Finish()

	if _, err := New(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// BuildFile embeds the topic list at in and writes the artifact to out.
func (b *Builder) BuildFile(ctx context.Context, in, out string) (int, error) {
	specs, err := LoadTopicSpecs(in)
	if err != nil {
		return 0, err
	}
	entries, err := b.Build(ctx, specs)
	if err != nil {
		return 0, err
	}
	if err := Save(out, entries); err != nil {
		return 0, err
	}
	b.logger.Info("catalog written", "path", out, "topics", len(entries))
	return len(entries), nil
}
