package book

import (
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/logging"
)

type HTTPHandler struct {
	service *Service
	log     logging.Logger
}

func NewHTTPHandler(service *Service, log logging.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

type bookRequest struct {
	Title           string  `json:"title" validate:"required,notblank,max=500"`
	Description     *string `json:"description" validate:"omitempty,max=10000"`
	PublicationDate string  `json:"publication_date" validate:"required,date"`
	AvailableCopies *int    `json:"available_copies" validate:"required,gte=0,lte=2147483647"`
	AuthorIDs       []int64 `json:"author_ids" validate:"dive,gt=0"`
	GenreIDs        []int64 `json:"genre_ids" validate:"dive,gt=0"`
}

func (req bookRequest) input() Input {
	return Input{
		Title:           req.Title,
		Description:     req.Description,
		PublicationDate: req.PublicationDate,
		AvailableCopies: *req.AvailableCopies,
		AuthorIDs:       req.AuthorIDs,
		GenreIDs:        req.GenreIDs,
	}
}

// Create handles POST /books
// @Summary Create a book with its authors and genres
// @Tags books
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body bookRequest true "Book"
// @Success 201 {object} httpx.SuccessResponse{data=Book}
// @Failure 400 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	b, err := h.service.Create(r.Context(), req.input())
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, b)
}

// List handles GET /books
// @Summary List books
// @Tags books
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httpx.SuccessResponse{data=[]Book}
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, details := httpx.ParsePage(r)
	if details != nil {
		httpx.ValidationFailed(w, r, details)
		return
	}
	books, err := h.service.List(r.Context(), page.Offset, page.Limit)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, books, page.Meta(len(books)))
}

// Get handles GET /books/{id}
// @Summary Get a book
// @Tags books
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.SuccessResponse{data=Book}
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, h.log, ErrNotFound)
		return
	}
	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Update handles PUT /books/{id}
// @Summary Replace a book, including its author and genre sets
// @Tags books
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Param body body bookRequest true "Book"
// @Success 200 {object} httpx.SuccessResponse{data=Book}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, h.log, ErrNotFound)
		return
	}
	var req bookRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	b, err := h.service.Update(r.Context(), id, req.input())
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags books
// @Security BearerAuth
// @Param id path int true "Book ID"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, h.log, ErrNotFound)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
