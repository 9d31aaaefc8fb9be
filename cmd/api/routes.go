package main

import (
	"context"
	"net/http"
	"time"

	"libraryapi/internal/auth"
	"libraryapi/internal/author"
	"libraryapi/internal/book"
	"libraryapi/internal/genre"
	"libraryapi/internal/httpx"
	"libraryapi/internal/loan"
	"libraryapi/internal/logging"
	"libraryapi/internal/reader"
)

// handlers groups everything the router dispatches to.
type handlers struct {
	readers *reader.HTTPHandler
	books   *book.HTTPHandler
	authors *author.HTTPHandler
	genres  *genre.HTTPHandler
	loans   *loan.HTTPHandler
	auth    *auth.HTTPHandler
}

type routerOptions struct {
	log          logging.Logger
	validator    httpx.TokenValidator
	ready        func(ctx context.Context) error
	corsOrigins  []string
	maxBodyBytes int64
	limiter      *httpx.RateLimitMiddleware
	loginLimiter *httpx.RateLimitMiddleware
}

// newRouter registers every route. Anything not listed as public goes
// through the bearer token check.
func newRouter(h handlers, opts routerOptions) http.Handler {
	mux := http.NewServeMux()
	protected := httpx.AuthMiddleware(opts.validator, opts.log)

	public := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, fn)
	}
	private := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, protected(fn))
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := opts.ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	login := http.HandlerFunc(h.auth.Login)
	if opts.loginLimiter != nil {
		login = opts.loginLimiter.Middleware(login).ServeHTTP
	}
	public("POST /auth/token", login)
	private("POST /auth/logout", h.auth.Logout)

	public("POST /readers", h.readers.Register)
	private("GET /readers", h.readers.List)
	private("GET /readers/{id}", h.readers.Get)
	private("DELETE /readers/{id}", h.readers.Delete)

	public("GET /books", h.books.List)
	public("GET /books/{id}", h.books.Get)
	private("POST /books", h.books.Create)
	private("PUT /books/{id}", h.books.Update)
	private("DELETE /books/{id}", h.books.Delete)

	public("GET /authors", h.authors.List)
	public("GET /authors/{id}", h.authors.Get)
	private("POST /authors", h.authors.Create)
	private("PUT /authors/{id}", h.authors.Update)
	private("DELETE /authors/{id}", h.authors.Delete)

	public("GET /genres", h.genres.List)
	private("POST /genres", h.genres.Create)

	private("GET /loans", h.loans.List)
	private("POST /loans", h.loans.Issue)
	private("POST /loans/{id}/return", h.loans.Return)

	mws := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware(opts.log),
		httpx.TracingMiddleware,
		httpx.AccessLogMiddleware(opts.log),
		httpx.SecurityHeadersMiddleware(false),
		httpx.CORSMiddleware(opts.corsOrigins),
		httpx.RequestSizeLimitMiddleware(opts.maxBodyBytes),
	}
	if opts.limiter != nil {
		mws = append(mws, opts.limiter.Middleware)
	}
	return httpx.Chain(mux, mws...)
}
