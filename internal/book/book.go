package book

import (
	"time"

	"libraryapi/internal/apperr"
)

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = apperr.New(apperr.ErrNotFound, "book not found")
	// ErrUnknownAuthors is returned when an author id does not resolve.
	ErrUnknownAuthors = apperr.New(apperr.ErrValidation, "one or more author ids do not exist")
	// ErrUnknownGenres is returned when a genre id does not resolve.
	ErrUnknownGenres = apperr.New(apperr.ErrValidation, "one or more genre ids do not exist")
	// ErrInvalidCopies is returned when available copies would go negative.
	ErrInvalidCopies = apperr.New(apperr.ErrValidation, "available copies must not be negative")
)

// Ref names an associated author or genre.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Book represents a book entity. PublicationDate is YYYY-MM-DD.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	PublicationDate string    `json:"publication_date"`
	AvailableCopies int       `json:"available_copies"`
	Authors         []Ref     `json:"authors"`
	Genres          []Ref     `json:"genres"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Input is the full writable shape of a book, used by create and update.
type Input struct {
	Title           string
	Description     *string
	PublicationDate string
	AvailableCopies int
	AuthorIDs       []int64
	GenreIDs        []int64
}

// UniqueIDs returns ids without duplicates, keeping first occurrences in
// order.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
