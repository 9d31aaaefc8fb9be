package reader

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

type registerRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=200"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Register handles POST /readers
// @Summary Register a reader
// @Tags readers
// @Accept json
// @Produce json
// @Param body body registerRequest true "Reader"
// @Success 201 {object} httpx.SuccessResponse{data=Reader}
// @Failure 400 {object} httpx.ErrorResponse
// @Router /readers [post]
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	rd, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, rd)
}

// List handles GET /readers
// @Summary List readers
// @Tags readers
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httpx.SuccessResponse{data=[]Reader}
// @Router /readers [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, details := httpx.ParsePage(r)
	if details != nil {
		httpx.ValidationFailed(w, r, details)
		return
	}
	readers, err := h.service.List(r.Context(), page.Offset, page.Limit)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, readers, page.Meta(len(readers)))
}

// Get handles GET /readers/{id}
// @Summary Get a reader
// @Tags readers
// @Security BearerAuth
// @Param id path int true "Reader ID"
// @Success 200 {object} httpx.SuccessResponse{data=Reader}
// @Failure 404 {object} httpx.ErrorResponse
// @Router /readers/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, h.log, ErrNotFound)
		return
	}
	rd, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, rd, nil)
}

// Delete handles DELETE /readers/{id}
// @Summary Delete a reader and their loans
// @Tags readers
// @Security BearerAuth
// @Param id path int true "Reader ID"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /readers/{id} [delete]
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
