package httpx

import (
	"context"
	"net/http"
	"strings"

	"libraryapi/internal/apperr"
	"libraryapi/internal/logging"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TokenValidator resolves a bearer token to the caller it was issued to.
type TokenValidator interface {
	Authenticate(ctx context.Context, token string) (Principal, error)
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	JSONError(w, r, http.StatusUnauthorized, CodeUnauthorized, "Could not validate credentials", nil)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the resolved Principal in the request context. Validator failures that
// carry no error kind, such as a lost database connection, are logged and
// answered with 500 rather than 401.
func AuthMiddleware(v TokenValidator, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				unauthorized(w, r)
				return
			}
			p, err := v.Authenticate(r.Context(), token)
			if err != nil {
				if !apperr.Known(err) {
					WriteError(w, r, log, err)
					return
				}
				unauthorized(w, r)
				return
			}
			trace.SpanFromContext(r.Context()).SetAttributes(attribute.Int64("reader.id", p.ReaderID))

			ctx := ContextWithPrincipal(r.Context(), p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
