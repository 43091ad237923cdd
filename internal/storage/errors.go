package storage

import "errors"

var (
	// ErrNotFound is returned when the deck or card no longer exists.
	ErrNotFound = errors.New("storage: not found")
	// ErrPersistence wraps any other failed write.
	ErrPersistence = errors.New("storage: write failed")
)
