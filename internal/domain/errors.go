package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is returned when a referenced event does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when a request fails domain validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRosterUnreadable is returned when an uploaded roster file cannot be
	// parsed as a whole. Individual bad rows are skipped, not errors.
	ErrRosterUnreadable = errors.New("roster file unreadable")
)
