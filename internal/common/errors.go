// Package common defines shared sentinel errors used across the catalog,
// storage and coordinator layers of platekeeper. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Input validation errors (missing title/plate, unknown category).
	ErrValidation = errors.New("validation error")

	// ErrImageUnavailable reports that every storage tier failed to produce
	// image bytes. This is a recoverable condition: the caller may retry
	// later, it must never be rendered as a hard failure.
	ErrImageUnavailable = errors.New("image unavailable")
)
