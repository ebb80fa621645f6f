// Package apperr defines the error kinds shared across the service.
// Callers classify failures with errors.Is against these sentinels.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the requested playlist or task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput covers malformed dates, empty names, non-positive
	// durations and playlists with no weekday selected. Rejected before
	// any write happens.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPersistence wraps storage failures on reads and writes.
	ErrPersistence = errors.New("persistence failure")

	// ErrConflict is reserved for concurrent-edit detection.
	ErrConflict = errors.New("conflict")
)

// Invalid wraps a reason as an ErrInvalidInput.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Persistence wraps an underlying storage error as an ErrPersistence.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
