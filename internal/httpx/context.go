package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	requestIDKey contextKey = "requestID"
)

// Principal is the authenticated caller attached by AuthMiddleware.
type Principal struct {
	ReaderID int64
	Email    string
	TokenID  string
	Token    string
}

// PrincipalFrom retrieves the authenticated caller from the context.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// ReaderIDFrom returns the authenticated reader id, or 0.
func ReaderIDFrom(r *http.Request) int64 {
	if p, ok := PrincipalFrom(r.Context()); ok {
		return p.ReaderID
	}
	return 0
}

func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func RequestIDFrom(r *http.Request) string {
	return RequestIDFromContext(r.Context())
}

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
