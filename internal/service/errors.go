package service

import "errors"

// Mutation failures map onto four buckets the handlers translate to HTTP
// statuses. Absence and lack of ownership deliberately share one error so a
// caller cannot probe whether another user's record exists.
var (
	// ErrNotFound covers both a missing record and one the caller does not
	// own or that is not in the required state.
	ErrNotFound = errors.New("not found or not authorized")

	// ErrConflict signals a duplicate watchlist entry.
	ErrConflict = errors.New("movie already in watchlist")
)

// ValidationError reports missing or malformed input, raised at the mutation
// boundary before anything is persisted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationError(msg string) error {
	return &ValidationError{Msg: msg}
}
