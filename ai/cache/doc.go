// Package cache provides a persistent embedding cache backed by BadgerDB.
//
// Entries are keyed by a BLAKE2b hash of the model name and the input text,
// and stored as packed little-endian float32 values.
//
//	cached, err := cache.New(provider.Embedder(), "/var/cache/hansard", cache.WithModel("all-minilm"))
//	if err != nil {
//	    return err
//	}
//	defer cached.Close()
package cache
