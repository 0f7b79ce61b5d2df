package catalog

import (
	"fmt"
	"slices"

	"github.com/poiesic/hansard/core"
)

// Catalog is the process-wide, read-only table of topic embeddings.
//
// Embeddings are held twice: as loaded on each entry, and L2-normalized in a
// single row-major matrix so ranking is one matrix-vector product.
// A Catalog is never mutated after construction and is safe for concurrent use.
type Catalog struct {
	entries []core.TopicEntry
	index   map[int]int
	matrix  []float32
	dim     int
}

// New builds a catalog from in-memory entries.
// Every entry must be valid, share one embedding dimension, and carry a unique topic id.
// Entries are copied; later changes to the argument do not affect the catalog.
func New(entries []core.TopicEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]core.TopicEntry, 0, len(entries)),
		index:   make(map[int]int, len(entries)),
	}

	for i := range entries {
		entry := &entries[i]
		if err := core.ValidateTopicEntry(entry); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrCatalogLoad, i, err)
		}
		if c.dim == 0 {
			c.dim = len(entry.Embedding)
			c.matrix = make([]float32, 0, len(entries)*c.dim)
		}
		if len(entry.Embedding) != c.dim {
			return nil, fmt.Errorf("%w: topic %d has dimension %d, expected %d",
				ErrCatalogLoad, entry.TopicID, len(entry.Embedding), c.dim)
		}
		if _, dup := c.index[entry.TopicID]; dup {
			return nil, fmt.Errorf("%w: duplicate topic id %d", ErrCatalogLoad, entry.TopicID)
		}

		c.index[entry.TopicID] = len(c.entries)
		c.entries = append(c.entries, core.TopicEntry{
			TopicID:   entry.TopicID,
			Embedding: slices.Clone(entry.Embedding),
			Keywords:  slices.Clone(entry.Keywords),
		})
		c.matrix = append(c.matrix, NormalizeVector(entry.Embedding)...)
	}

	return c, nil
}

// Len returns the number of topics.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Dimension returns the embedding dimension, or 0 for an empty catalog.
func (c *Catalog) Dimension() int {
	return c.dim
}

// Entry returns the i-th entry in load order. Callers must not modify it.
func (c *Catalog) Entry(i int) core.TopicEntry {
	return c.entries[i]
}

// TopicIDAt returns the topic id of the i-th row.
func (c *Catalog) TopicIDAt(i int) int {
	return c.entries[i].TopicID
}

// Matrix returns the normalized embedding matrix, Len() rows by Dimension() columns.
// The slice is shared and must not be modified.
func (c *Catalog) Matrix() []float32 {
	return c.matrix
}

// Contains reports whether topicID is in the catalog.
func (c *Catalog) Contains(topicID int) bool {
	_, ok := c.index[topicID]
	return ok
}

// KeywordsOf returns the keyword list for topicID.
func (c *Catalog) KeywordsOf(topicID int) ([]string, error) {
	i, ok := c.index[topicID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTopic, topicID)
	}
	return slices.Clone(c.entries[i].Keywords), nil
}

// TopicIDs returns every topic id in load order.
func (c *Catalog) TopicIDs() []int {
	ids := make([]int, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.TopicID
	}
	return ids
}
