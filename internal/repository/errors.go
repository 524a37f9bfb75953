package repository

import "errors"

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict covers uniqueness violations and concurrent-edit races
	// surfaced by the storage layer.
	ErrConflict = errors.New("storage conflict")
)
