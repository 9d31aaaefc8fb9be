// Package apperr holds the error kinds shared by every domain package.
// Domain sentinels wrap one of these so the HTTP boundary can map them
// with errors.Is without importing the domain packages.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrValidation    = errors.New("invalid input")
	ErrUnavailable   = errors.New("unavailable")
	ErrLimitExceeded = errors.New("limit exceeded")
	ErrUnauthorized  = errors.New("unauthorized")
)

var kinds = []error{ErrNotFound, ErrConflict, ErrValidation, ErrUnavailable, ErrLimitExceeded, ErrUnauthorized}

// Known reports whether err carries one of the kinds above. Errors without
// a kind are failures of the service itself.
func Known(err error) bool {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// New returns a sentinel whose message is msg and which matches kind.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }
