package author

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

type authorRequest struct {
	Name      string  `json:"name" validate:"required,notblank,max=200"`
	Biography *string `json:"biography" validate:"omitempty,max=10000"`
	BirthDate *string `json:"birth_date" validate:"omitempty,date"`
}

func (req authorRequest) input() Input {
	return Input{Name: req.Name, Biography: req.Biography, BirthDate: req.BirthDate}
}

// Create handles POST /authors
// @Summary Create an author
// @Tags authors
// @Security BearerAuth
// @Param body body authorRequest true "Author"
// @Success 201 {object} httpx.SuccessResponse{data=Author}
// @Failure 400 {object} httpx.ErrorResponse
// @Router /authors [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	a, err := h.service.Create(r.Context(), req.input())
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, a)
}

// List handles GET /authors
// @Summary List authors
// @Tags authors
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httpx.SuccessResponse{data=[]Author}
// @Router /authors [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, details := httpx.ParsePage(r)
	if details != nil {
		httpx.ValidationFailed(w, r, details)
		return
	}
	authors, err := h.service.List(r.Context(), page.Offset, page.Limit)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, authors, page.Meta(len(authors)))
}

// Get handles GET /authors/{id}
// @Summary Get an author
// @Tags authors
// @Param id path int true "Author ID"
// @Success 200 {object} httpx.SuccessResponse{data=Author}
// @Failure 404 {object} httpx.ErrorResponse
// @Router /authors/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, h.log, ErrNotFound)
		return
	}
	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, a, nil)
}

// Update handles PUT /authors/{id}
// @Summary Replace an author
// @Tags authors
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Param body body authorRequest true "Author"
// @Success 200 {object} httpx.SuccessResponse{data=Author}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /authors/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, h.log, ErrNotFound)
		return
	}
	var req authorRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	a, err := h.service.Update(r.Context(), id, req.input())
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, a, nil)
}

// Delete handles DELETE /authors/{id}
// @Summary Delete an author
// @Tags authors
// @Security BearerAuth
// @Param id path int true "Author ID"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /authors/{id} [delete]
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
