package storage

import (
	"fmt"
	"strings"

	"github.com/poiesic/hansard/core"
)

// SelectSpeeches builds the sampling query: the speech columns of table
// matching filters, capped at rowCap rows.
func SelectSpeeches(d Dialect, table string, filters Filters, rowCap int) (string, []any, error) {
	if !ValidIdentifier(table) {
		return "", nil, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table)
	}
	if rowCap <= 0 {
		return "", nil, fmt.Errorf("%w: row cap %d", ErrInvalidQuery, rowCap)
	}

	var args []any
	where, err := filters.where(d, &args)
	if err != nil {
		return "", nil, err
	}
	args = append(args, rowCap)

	query := fmt.Sprintf("SELECT %s FROM %s %s LIMIT %s",
		strings.Join(core.SpeechColumns, ", "), table, where, d.Placeholder(len(args)))
	return query, args, nil
}

// SelectDistinct builds the query listing the distinct non-null values of column.
func SelectDistinct(table, column string) (string, error) {
	if !ValidIdentifier(table) {
		return "", fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table)
	}
	if !ValidIdentifier(column) {
		return "", fmt.Errorf("%w: column %q", ErrInvalidIdentifier, column)
	}
	return fmt.Sprintf("SELECT DISTINCT %[2]s FROM %[1]s WHERE %[2]s IS NOT NULL ORDER BY %[2]s", table, column), nil
}
