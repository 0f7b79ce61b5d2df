package server

import "errors"

var (
	// ErrExplorerRequired is returned when no explorer is supplied.
	ErrExplorerRequired = errors.New("explorer is required")

	// ErrTopicFinderRequired is returned when no topic finder is supplied.
	ErrTopicFinderRequired = errors.New("topic finder is required")

	// ErrChoicesRequired is returned when the startup choice lists are missing.
	ErrChoicesRequired = errors.New("choices are required")

	// ErrInvalidChoice is returned when a request names a year or party
	// outside the offered choices.
	ErrInvalidChoice = errors.New("not a valid choice")
)
