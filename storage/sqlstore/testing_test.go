package sqlstore

import (
	"context"
	"testing"

	"github.com/poiesic/hansard/core"
	"github.com/stretchr/testify/require"
)

const testTable = "hansard"

var testSpeeches = []core.SpeechRecord{
	{ScrapedName: "Rishi Sunak", ProcParty: "Conservative", Text: "Schools are improving.", Year: 2023, PersonURL: "https://example.org/rs", TopicID: 0},
	{ScrapedName: "Rishi Sunak", ProcParty: "Conservative", Text: "The budget is balanced.", Year: 2022, PersonURL: "https://example.org/rs", TopicID: 3},
	{ScrapedName: "Keir Starmer", ProcParty: "Labour", Text: "Teachers deserve more.", Year: 2023, PersonURL: "https://example.org/ks", TopicID: 0},
	{ScrapedName: "Jane Smith", ProcParty: "Labour", Text: "Hospitals are full.", Year: 2019, PersonURL: "https://example.org/js", TopicID: 1},
	{ScrapedName: "Iain Duncan Smith", ProcParty: "Conservative", Text: "Welfare reform works.", Year: 2012, PersonURL: "https://example.org/ids", TopicID: 2},
}

// seededStore returns an in-memory store holding testSpeeches.
func seededStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	require.NoError(t, s.CreateSchema(ctx, testTable))
	require.NoError(t, s.InsertSpeeches(ctx, testTable, testSpeeches))
	return s
}
