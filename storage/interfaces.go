package storage

import (
	"context"

	"github.com/poiesic/hansard/core"
)

// SpeechStore is the read side of the relational speech table.
// Implementations must be safe for concurrent use.
type SpeechStore interface {
	// QuerySpeeches returns at most rowCap records from table matching filters,
	// projected to core.SpeechColumns. Failures wrap ErrStoreQuery.
	QuerySpeeches(ctx context.Context, table string, filters Filters, rowCap int) ([]core.SpeechRecord, error)

	// Distinct returns the distinct non-null values of column in table,
	// ordered by the column and rendered as strings.
	Distinct(ctx context.Context, table, column string) ([]string, error)

	// Close releases the underlying connection pool.
	Close() error
}
