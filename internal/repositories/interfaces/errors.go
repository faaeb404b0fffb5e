package interfaces

import "errors"

var (
	// ErrNotFound is returned when no record matches the query.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a conditional write matched no document,
	// meaning another writer committed first.
	ErrConflict = errors.New("concurrent modification")

	// ErrDuplicate is returned when a unique index rejects the write.
	ErrDuplicate = errors.New("duplicate value")
)
