package explore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadChoices(t *testing.T) {
	store := &fakeStore{distinct: map[string][]string{
		"year":         {"2019", "2023"},
		"proc_party":   {"Conservative", "Labour"},
		"decade":       {"2010", "2020"},
		"scraped_name": {"Keir Starmer", "Rishi Sunak"},
	}}

	c, err := LoadChoices(context.Background(), store, "hansard")
	require.NoError(t, err)
	assert.Equal(t, []string{"2019", "2023", "Any Year"}, c.Years)
	assert.Equal(t, []string{"Conservative", "Labour", "Any Party"}, c.Parties)
	assert.Equal(t, []string{"2010", "2020"}, c.Decades)
	assert.Equal(t, []string{"Keir Starmer", "Rishi Sunak"}, c.Names)
}

func TestLoadChoices_Errors(t *testing.T) {
	_, err := LoadChoices(context.Background(), nil, "hansard")
	assert.ErrorIs(t, err, ErrStoreRequired)

	boom := errors.New("no such table")
	_, err = LoadChoices(context.Background(), &fakeStore{err: boom}, "hansard")
	assert.ErrorIs(t, err, boom)
}
