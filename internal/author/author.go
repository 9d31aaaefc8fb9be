package author

import "libraryapi/internal/apperr"

var (
	// ErrNotFound is returned when an author is not found.
	ErrNotFound = apperr.New(apperr.ErrNotFound, "author not found")
	// ErrNameTaken is returned when another author already has the name.
	ErrNameTaken = apperr.New(apperr.ErrConflict, "author already exists")
)

// Author is a book author. BirthDate is YYYY-MM-DD.
type Author struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Biography *string `json:"biography"`
	BirthDate *string `json:"birth_date"`
}

// Input carries the writable fields of an Author.
type Input struct {
	Name      string
	Biography *string
	BirthDate *string
}
