// Package catalog holds the fixed table of topic embeddings that free-text
// queries are ranked against.
//
// A Catalog is loaded once at startup from a JSON artifact and shared
// read-only across requests. Load failures wrap ErrCatalogLoad and must stop
// the process from serving. Builder produces artifacts by embedding each
// topic's keyword list.
package catalog
