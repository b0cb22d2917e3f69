package model

import "errors"

var (
	// ErrNotFound indicates an operation on a nonexistent ID.
	ErrNotFound = errors.New("not found")

	// ErrInvalidOperation indicates an attempt to mutate or delete the
	// reserved "all" folder.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvalidFormat indicates a malformed import document.
	ErrInvalidFormat = errors.New("invalid format")
)
