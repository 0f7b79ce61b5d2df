package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/poiesic/hansard/core"
)

// record is the on-disk form of a topic entry. Pointer fields let Load tell
// a missing field apart from a zero value.
type record struct {
	TopicID   *int        `json:"topic_id"`
	Embedding *[]float32  `json:"embedding"`
	Keywords  keywordList `json:"keywords,omitempty"`
}

// keywordList accepts either a JSON array of strings or a single
// comma-separated string.
type keywordList []string

func (k *keywordList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = splitKeywords(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*k = list
	return nil
}

func splitKeywords(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Load reads a catalog artifact from path.
// Any failure wraps ErrCatalogLoad.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a catalog artifact from r.
func Read(r io.Reader) (*Catalog, error) {
	var records []record
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty artifact", ErrCatalogLoad)
		}
		return nil, fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}

	entries := make([]core.TopicEntry, len(records))
	for i, rec := range records {
		if rec.TopicID == nil {
			return nil, fmt.Errorf("%w: record %d is missing topic_id", ErrCatalogLoad, i)
		}
		if rec.Embedding == nil {
			return nil, fmt.Errorf("%w: record %d (topic %d) is missing embedding", ErrCatalogLoad, i, *rec.TopicID)
		}
		entries[i] = core.TopicEntry{
			TopicID:   *rec.TopicID,
			Embedding: *rec.Embedding,
			Keywords:  rec.Keywords,
		}
	}

	return New(entries)
}

// Save writes entries to path as a catalog artifact.
func Save(path string, entries []core.TopicEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write encodes entries as a catalog artifact.
func Write(w io.Writer, entries []core.TopicEntry) error {
	records := make([]record, len(entries))
	for i := range entries {
		records[i] = record{
			TopicID:   &entries[i].TopicID,
			Embedding: &entries[i].Embedding,
			Keywords:  entries[i].Keywords,
		}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}
