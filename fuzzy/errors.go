package fuzzy

import "errors"

var (
	// ErrInvalidThreshold is returned when a threshold is outside [0, 100]
	// or the low threshold exceeds the high one.
	ErrInvalidThreshold = errors.New("invalid similarity threshold")

	// ErrInvalidLimit is returned when the candidate limit is not positive.
	ErrInvalidLimit = errors.New("limit must be greater than 0")

	// ErrScorerRequired is returned when a nil scorer is supplied.
	ErrScorerRequired = errors.New("scorer required")
)
