package storage

import "errors"

var (
	// ErrNotFound covers both a missing row and a row owned by someone else.
	// Handlers must not distinguish the two cases.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when registration hits the unique
	// constraint on users.email.
	ErrDuplicateEmail = errors.New("email already registered")
)
