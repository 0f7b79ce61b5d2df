package cache

import "errors"

var (
	// ErrEmbedderRequired is returned when no underlying embedder is supplied.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrCorruptEntry is returned when a cached value cannot be decoded.
	ErrCorruptEntry = errors.New("corrupt cache entry")

	// ErrCacheClosed is returned when the cache is used after Close.
	ErrCacheClosed = errors.New("embedding cache is closed")
)
