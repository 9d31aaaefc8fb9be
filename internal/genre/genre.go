package genre

import "libraryapi/internal/apperr"

// ErrNameTaken is returned when a genre with the same name exists.
var ErrNameTaken = apperr.New(apperr.ErrConflict, "genre already exists")

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
