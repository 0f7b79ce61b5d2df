package storage

import (
	"fmt"
	"strings"
)

// Clause is one condition of a WHERE filter. The zero value is empty and
// renders nothing.
type Clause struct {
	Operator string
	Field    string
	Values   []any
	anyOf    bool
}

// IsEmpty reports whether the clause constrains nothing.
func (c Clause) IsEmpty() bool {
	return len(c.Values) == 0 && !c.anyOf
}

// BuildFilter returns an empty clause when value equals defaultValue,
// otherwise "<op> <field> = ?" with value bound as a parameter.
func BuildFilter[T comparable](field, op string, value, defaultValue T) Clause {
	if value == defaultValue {
		return Clause{}
	}
	return Clause{Operator: op, Field: field, Values: []any{value}}
}

// BuildAnyOf returns "<op> <field> IN (?, ...)" over values.
// With no values the clause matches no rows.
func BuildAnyOf[T any](field, op string, values []T) Clause {
	bound := make([]any, len(values))
	for i, v := range values {
		bound[i] = v
	}
	return Clause{Operator: op, Field: field, Values: bound, anyOf: true}
}

// Filters is an ordered list of clauses appended to "WHERE 1 = 1".
type Filters []Clause

// Validate checks every non-empty clause's field and operator.
func (f Filters) Validate() error {
	for _, c := range f {
		if c.IsEmpty() {
			continue
		}
		if !ValidIdentifier(c.Field) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, c.Field)
		}
		switch strings.ToUpper(c.Operator) {
		case "AND", "OR":
		default:
			return fmt.Errorf("%w: %q", ErrInvalidOperator, c.Operator)
		}
	}
	return nil
}

// Where renders the filter as a WHERE clause for dialect d, numbering
// placeholders from 1, and returns the bound arguments in order.
func (f Filters) Where(d Dialect) (string, []any, error) {
	var args []any
	clause, err := f.where(d, &args)
	return clause, args, err
}

func (f Filters) where(d Dialect, args *[]any) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("WHERE 1 = 1")
	for _, c := range f {
		if c.IsEmpty() {
			continue
		}
		op := strings.ToUpper(c.Operator)

		if !c.anyOf {
			*args = append(*args, c.Values[0])
			fmt.Fprintf(&b, " %s %s = %s", op, c.Field, d.Placeholder(len(*args)))
			continue
		}

		if len(c.Values) == 0 {
			fmt.Fprintf(&b, " %s 1 = 0", op)
			continue
		}
		placeholders := make([]string, len(c.Values))
		for i, v := range c.Values {
			*args = append(*args, v)
			placeholders[i] = d.Placeholder(len(*args))
		}
		fmt.Fprintf(&b, " %s %s IN (%s)", op, c.Field, strings.Join(placeholders, ", "))
	}
	return b.String(), nil
}
