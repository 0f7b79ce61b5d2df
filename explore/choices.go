package explore

import (
	"context"
	"fmt"

	"github.com/poiesic/hansard/core"
	"github.com/poiesic/hansard/storage"
)

// Choices are the selectable values offered for the explore filters.
type Choices struct {
	Years   []string `json:"years"`
	Parties []string `json:"parties"`
	Decades []string `json:"decades"`
	Names   []string `json:"names"`
}

// LoadChoices reads the distinct years, parties, decades and speaker names
// from table. "Any Year" and "Any Party" are appended to their lists.
func LoadChoices(ctx context.Context, store storage.SpeechStore, table string) (*Choices, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	var c Choices
	lists := []struct {
		column string
		dst    *[]string
	}{
		{"year", &c.Years},
		{"proc_party", &c.Parties},
		{"decade", &c.Decades},
		{"scraped_name", &c.Names},
	}
	for _, l := range lists {
		values, err := store.Distinct(ctx, table, l.column)
		if err != nil {
			return nil, fmt.Errorf("loading %s choices: %w", l.column, err)
		}
		*l.dst = values
	}

	c.Years = append(c.Years, core.AnyYear)
	c.Parties = append(c.Parties, core.AnyParty)
	return &c, nil
}
