package main

import (
	"fmt"
	"os"

	"github.com/poiesic/hansard/ai"
	"github.com/poiesic/hansard/ai/openai"
	"github.com/poiesic/hansard/catalog"
	"github.com/urfave/cli/v2"
)

func buildCatalogCommand(c *cli.Context) error {
	if c.Int("batch-size") <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if c.Int("max-retries") <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		// the catalog defines the dimension, so any is accepted here
		ai.WithDimension(0),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	builder, err := catalog.NewBuilder(embedder,
		catalog.WithBatchSize(c.Int("batch-size")),
		catalog.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
		catalog.WithProgress(os.Stderr),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Topics: %s\n", c.String("in"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", aiConfig.EmbeddingHost)
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", aiConfig.EmbeddingModel)
	fmt.Fprintln(os.Stderr)

	n, err := builder.BuildFile(c.Context, c.String("in"), c.String("out"))
	if err != nil {
		return fmt.Errorf("catalog build failed: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Wrote %d topics to %s\n", n, c.String("out"))
	return nil
}
