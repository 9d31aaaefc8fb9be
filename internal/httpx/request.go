package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is an offset/limit window taken from the skip and limit query
// parameters.
type Page struct {
	Offset int
	Limit  int
}

// Meta is the pagination block echoed in list responses.
func (p Page) Meta(count int) map[string]any {
	return map[string]any{"skip": p.Offset, "limit": p.Limit, "count": count}
}

// ParsePage reads skip (default 0) and limit (default 10). Limits above
// MaxLimit are clamped; negative or non-numeric values are rejected.
func ParsePage(r *http.Request) (Page, []ErrorDetail) {
	q := r.URL.Query()
	p := Page{Offset: 0, Limit: DefaultLimit}
	var details []ErrorDetail

	if s := q.Get("skip"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			details = append(details, ErrorDetail{Field: "skip", Message: "skip must be a non-negative integer"})
		} else {
			p.Offset = n
		}
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			details = append(details, ErrorDetail{Field: "limit", Message: "limit must be a positive integer"})
		} else {
			p.Limit = ClampLimit(n)
		}
	}
	return p, details
}

// ClampLimit bounds a requested page size to [1, MaxLimit].
func ClampLimit(n int) int {
	switch {
	case n < 1:
		return DefaultLimit
	case n > MaxLimit:
		return MaxLimit
	default:
		return n
	}
}

// PathID parses the named path value as a positive int64 id.
func PathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// DecodeJSON decodes the request body into dst and runs struct validation.
// On failure it writes the error response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			JSONError(w, r, http.StatusRequestEntityTooLarge, CodeTooLarge, "Request body too large", nil)
		case errors.Is(err, io.EOF):
			JSONError(w, r, http.StatusBadRequest, CodeBadRequest, "Request body is required", nil)
		default:
			JSONError(w, r, http.StatusBadRequest, CodeBadRequest, "Invalid JSON body", nil)
		}
		return false
	}
	if details := ValidateStruct(dst); len(details) > 0 {
		ValidationFailed(w, r, details)
		return false
	}
	return true
}
