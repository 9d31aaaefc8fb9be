package httpx

import (
	"errors"
	"net/http"

	"libraryapi/internal/apperr"
	"libraryapi/internal/logging"
)

const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeValidation    = "VALIDATION_ERROR"
	CodeConflict      = "ALREADY_EXISTS"
	CodeNotFound      = "NOT_FOUND"
	CodeUnavailable   = "UNAVAILABLE"
	CodeLimitExceeded = "LIMIT_EXCEEDED"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeRateLimited   = "RATE_LIMIT_EXCEEDED"
	CodeTooLarge      = "PAYLOAD_TOO_LARGE"
	CodeInternal      = "INTERNAL_ERROR"
)

var kinds = []struct {
	kind   error
	status int
	code   string
}{
	{apperr.ErrNotFound, http.StatusNotFound, CodeNotFound},
	{apperr.ErrConflict, http.StatusBadRequest, CodeConflict},
	{apperr.ErrValidation, http.StatusBadRequest, CodeValidation},
	{apperr.ErrUnavailable, http.StatusBadRequest, CodeUnavailable},
	{apperr.ErrLimitExceeded, http.StatusBadRequest, CodeLimitExceeded},
	{apperr.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
}

// StatusFor returns the HTTP status and error code for err.
func StatusFor(err error) (int, string) {
	for _, k := range kinds {
		if errors.Is(err, k.kind) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

// WriteError maps a service error to the JSON error envelope. Errors without
// a known kind are logged and reported as a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	status, code := StatusFor(err)
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error(r.Context(), "request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", RequestIDFrom(r),
				"error", err,
			)
		}
		JSONError(w, r, status, code, "Internal server error", nil)
		return
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	JSONError(w, r, status, code, err.Error(), nil)
}
