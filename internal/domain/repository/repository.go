package repository

import "errors"

var (
	// ErrNotFound is returned by any repository when the referenced document
	// does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a unique index
	// (username or email).
	ErrDuplicate = errors.New("duplicate key")
)
