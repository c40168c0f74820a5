package types

import "errors"

var (
	ErrReportNotFound = errors.New("report not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrLGANotFound    = errors.New("lga not found")
	ErrNewsNotFound   = errors.New("news item not found")

	// ErrValidation covers missing or malformed caller input, e.g. a
	// resolution without notes.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized means the acting user's role or identity does not
	// permit the requested operation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidTransition means the requested status change has no edge
	// in the lifecycle table for the report's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict is returned by the store when a guarded write matched
	// zero rows, i.e. a concurrent writer got there first.
	ErrConflict = errors.New("conflicting update")
)
