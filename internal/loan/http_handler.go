package loan

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

type issueRequest struct {
	BookID   int64 `json:"book_id" validate:"required,gt=0"`
	ReaderID int64 `json:"reader_id" validate:"required,gt=0"`
}

// Issue handles POST /loans
// @Summary Lend a book to a reader
// @Description Takes one available copy and records a loan due in 14 days.
// @Tags loans
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body issueRequest true "Loan"
// @Success 201 {object} httpx.SuccessResponse{data=Loan}
// @Failure 400 {object} httpx.ErrorResponse "Unavailable, limit exceeded or invalid input"
// @Failure 404 {object} httpx.ErrorResponse "Reader not found"
// @Router /loans [post]
func (h *HTTPHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	l, err := h.service.Issue(r.Context(), req.BookID, req.ReaderID)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, l)
}

// Return handles POST /loans/{id}/return
// @Summary Return a loan
// @Tags loans
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} httpx.SuccessResponse{data=Loan}
// @Failure 400 {object} httpx.ErrorResponse "Unknown or already returned"
// @Router /loans/{id}/return [post]
func (h *HTTPHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteError(w, r, h.log, ErrNotReturnable)
		return
	}
	l, err := h.service.Return(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, l, nil)
}

// List handles GET /loans
// @Summary List loans
// @Tags loans
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httpx.SuccessResponse{data=[]Loan}
// @Router /loans [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, details := httpx.ParsePage(r)
	if details != nil {
		httpx.ValidationFailed(w, r, details)
		return
	}
	loans, err := h.service.List(r.Context(), page.Offset, page.Limit)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, loans, page.Meta(len(loans)))
}
