package catalog

import "errors"

var (
	// ErrCatalogLoad is returned when a catalog artifact is missing, malformed,
	// or contains invalid or duplicate entries. It is fatal at startup.
	ErrCatalogLoad = errors.New("catalog load failed")

	// ErrUnknownTopic is returned when a topic id is not in the catalog.
	ErrUnknownTopic = errors.New("unknown topic")

	// ErrEmbedderRequired is returned when a Builder is created without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidBatchSize is returned when a Builder batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")
)
