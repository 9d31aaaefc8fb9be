package reader

import (
	"time"

	"libraryapi/internal/apperr"
)

var (
	// ErrNotFound is returned when a reader is not found.
	ErrNotFound = apperr.New(apperr.ErrNotFound, "reader not found")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = apperr.New(apperr.ErrConflict, "email already registered")
)

// Reader is a registered library member.
type Reader struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
