package genre

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

type createRequest struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

// Create handles POST /genres
// @Summary Create a genre
// @Tags genres
// @Security BearerAuth
// @Param body body createRequest true "Genre"
// @Success 201 {object} httpx.SuccessResponse{data=Genre}
// @Failure 400 {object} httpx.ErrorResponse
// @Router /genres [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	g, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, g)
}

// List handles GET /genres
// @Summary List genres
// @Tags genres
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httpx.SuccessResponse{data=[]Genre}
// @Router /genres [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, details := httpx.ParsePage(r)
	if details != nil {
		httpx.ValidationFailed(w, r, details)
		return
	}
	genres, err := h.service.List(r.Context(), page.Offset, page.Limit)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, genres, page.Meta(len(genres)))
}
