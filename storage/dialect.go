package storage

import (
	"regexp"
	"strconv"
)

// Dialect selects SQL placeholder syntax.
type Dialect int

const (
	// SQLite uses positional ? placeholders.
	SQLite Dialect = iota
	// Postgres uses numbered $n placeholders.
	Postgres
)

// Placeholder returns the placeholder for the n-th (1-based) bound argument.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case Postgres:
		return "postgres"
	default:
		return "dialect(" + strconv.Itoa(int(d)) + ")"
	}
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name can be used as a table or column name.
// Identifiers cannot be bound as parameters, so only plain names are accepted.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}
