package model

import "errors"

var (
	// ErrNotFound is returned when the target persona does not exist.
	ErrNotFound = errors.New("persona not found")
	// ErrConflict is returned when an email is already used by another persona,
	// whether the service pre-check or the storage unique index caught it.
	ErrConflict = errors.New("email already registered")
	// ErrInvalidArgument marks caller input outside the accepted range.
	ErrInvalidArgument = errors.New("invalid argument")
)
