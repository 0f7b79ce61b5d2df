package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSpeeches(t *testing.T) {
	filters := Filters{BuildFilter("year", "AND", "2023", "Any Year")}

	query, args, err := SelectSpeeches(Postgres, "hansard", filters, 100)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT scraped_name, proc_party, text, year, person_url, topic_id FROM hansard WHERE 1 = 1 AND year = $1 LIMIT $2",
		query)
	assert.Equal(t, []any{"2023", 100}, args)

	query, args, err = SelectSpeeches(SQLite, "hansard_2", nil, 5)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT scraped_name, proc_party, text, year, person_url, topic_id FROM hansard_2 WHERE 1 = 1 LIMIT ?",
		query)
	assert.Equal(t, []any{5}, args)
}

func TestSelectSpeeches_Errors(t *testing.T) {
	_, _, err := SelectSpeeches(SQLite, "hansard; DROP TABLE x", nil, 10)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, _, err = SelectSpeeches(SQLite, "hansard", nil, 0)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, _, err = SelectSpeeches(SQLite, "hansard", Filters{BuildFilter("x y", "AND", 1, 0)}, 10)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestSelectDistinct(t *testing.T) {
	query, err := SelectDistinct("hansard", "proc_party")
	require.NoError(t, err)
	assert.Equal(t, "SELECT DISTINCT proc_party FROM hansard WHERE proc_party IS NOT NULL ORDER BY proc_party", query)

	_, err = SelectDistinct("hansard", "party)--")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = SelectDistinct("", "year")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}
