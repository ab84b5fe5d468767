package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a concurrent write collided with an existing row.
	// Callers are expected to re-fetch and retry.
	ErrConflict = errors.New("conflict, retryable")
)
