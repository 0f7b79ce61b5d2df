package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	src := `[
		{"topic_id": 0, "embedding": [1, 0], "keywords": ["schools", "teachers"]},
		{"topic_id": 1, "embedding": [0, 1], "keywords": "tax, budget , "},
		{"topic_id": 2, "embedding": [1, 1]}
	]`

	c, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	kw, err := c.KeywordsOf(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"tax", "budget"}, kw)

	kw, err = c.KeywordsOf(2)
	require.NoError(t, err)
	assert.Empty(t, kw)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing embedding", `[{"topic_id": 0, "keywords": ["a"]}]`},
		{"missing topic id", `[{"embedding": [1, 0]}]`},
		{"malformed json", `[{"topic_id": 0,`},
		{"not a list", `{"topic_id": 0}`},
		{"empty input", ``},
		{"duplicate ids", `[{"topic_id": 1, "embedding": [1]}, {"topic_id": 1, "embedding": [2]}]`},
		{"null embedding", `[{"topic_id": 0, "embedding": null}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCatalogLoad)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrCatalogLoad)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	entries := sampleEntries()

	require.NoError(t, Save(path, entries))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 7, 3}, c.TopicIDs())
	assert.Equal(t, entries[1].Embedding, c.Entry(1).Embedding)

	kw, err := c.KeywordsOf(0)
	require.NoError(t, err)
	assert.Equal(t, entries[0].Keywords, kw)
}

func TestWrite_FieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleEntries()[:1]))

	out := buf.String()
	assert.Contains(t, out, `"topic_id":0`)
	assert.Contains(t, out, `"embedding":[3,4,0]`)
	assert.Contains(t, out, `"keywords":["schools","teachers"]`)
}

func TestLoadTopicSpecs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")
	src := "- topic_id: 0\n  keywords: [schools, teachers]\n- topic_id: 4\n  keywords:\n    - housing\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	specs, err := LoadTopicSpecs(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, TopicSpec{TopicID: 0, Keywords: []string{"schools", "teachers"}}, specs[0])
	assert.Equal(t, TopicSpec{TopicID: 4, Keywords: []string{"housing"}}, specs[1])
}
