package service

import (
	"errors"

	"github.com/nezumi0627/trend-analysis-aI/internal/database"
)

var (
	// ErrEmptyText rejects empty or whitespace-only input.
	ErrEmptyText = errors.New("text is empty")

	// ErrTextTooLong rejects input over the configured maximum; input
	// is never silently truncated.
	ErrTextTooLong = errors.New("text exceeds maximum length")
)

// IsValidation reports whether err is a client-side validation failure,
// detected before any store interaction and never retried.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyText) || errors.Is(err, ErrTextTooLong)
}

// IsConflict reports whether err is store contention that exhausted the
// retry budget; the caller may retry the request.
func IsConflict(err error) bool {
	return errors.Is(err, database.ErrConflict)
}
