package ai

import "errors"

var (
	// ErrEmbeddingFailed is returned when the embedding service cannot encode text.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrUnexpectedDimension is returned when the service returns vectors of the wrong size.
	ErrUnexpectedDimension = errors.New("unexpected embedding dimension")
)
