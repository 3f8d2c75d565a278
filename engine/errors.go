package engine

import "errors"

// Sentinel errors. Callers wrap them with context and test with errors.Is.
var (
	// ErrInvalidInput marks arguments no statistic can be computed from,
	// e.g. an empty sample or an unknown period key.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks lookups of entities that do not exist.
	ErrNotFound = errors.New("not found")
)
