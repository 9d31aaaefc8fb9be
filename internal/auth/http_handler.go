package auth

import (
	"mime"
	"net/http"
	"strings"

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

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /auth/token
// @Summary Obtain an access token
// @Description Accepts a JSON body or an OAuth2 password form (username, password).
// @Tags auth
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body LoginReq true "Login request"
// @Success 200 {object} httpx.SuccessResponse{data=Token}
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /auth/token [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, httpx.CodeBadRequest, "Invalid form body", nil)
			return
		}
		req.Email = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
		if details := httpx.ValidateStruct(req); len(details) > 0 {
			httpx.ValidationFailed(w, r, details)
			return
		}
	} else if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	token, err := h.service.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccess(w, r, token, nil)
}

func isForm(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}

// Logout handles POST /auth/logout
// @Summary Revoke the current access token
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httpx.ErrorResponse
// @Router /auth/logout [post]
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	p, ok := httpx.PrincipalFrom(r.Context())
	if !ok {
		httpx.WriteError(w, r, h.log, ErrUnauthorized)
		return
	}
	if err := h.service.Logout(r.Context(), p.Token); err != nil {
		httpx.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
