package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"libraryapi/internal/auth"
	"libraryapi/internal/author"
	"libraryapi/internal/book"
	"libraryapi/internal/genre"
	"libraryapi/internal/httpx"
	"libraryapi/internal/loan"
	"libraryapi/internal/logging"
	"libraryapi/internal/reader"
	"libraryapi/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

const validToken = "valid-token"

type stubValidator struct{}

func (stubValidator) Authenticate(_ context.Context, token string) (httpx.Principal, error) {
	if token != validToken {
		return httpx.Principal{}, auth.ErrUnauthorized
	}
	return httpx.Principal{ReaderID: 1, Email: "ada@example.com", Token: token}, nil
}

type mocks struct {
	readers *reader.MockRepository
	books   *book.MockRepository
	authors *author.MockRepository
	genres  *genre.MockRepository
	loans   *loan.MockRepository
}

func newTestRouter(t *testing.T, ready func(context.Context) error) (http.Handler, mocks) {
	ctrl := gomock.NewController(t)
	log := logging.Nop()
	m := mocks{
		readers: reader.NewMockRepository(ctrl),
		books:   book.NewMockRepository(ctrl),
		authors: author.NewMockRepository(ctrl),
		genres:  genre.NewMockRepository(ctrl),
		loans:   loan.NewMockRepository(ctrl),
	}
	readerService := reader.NewService(m.readers, log)
	authService := auth.NewService(testutil.TestSecret, time.Hour, readerService, auth.NewMockRevocationRepository(ctrl), log)

	h := handlers{
		readers: reader.NewHTTPHandler(readerService, log),
		books:   book.NewHTTPHandler(book.NewService(m.books, log), log),
		authors: author.NewHTTPHandler(author.NewService(m.authors, log), log),
		genres:  genre.NewHTTPHandler(genre.NewService(m.genres, log), log),
		loans:   loan.NewHTTPHandler(loan.NewService(m.loans, log), log),
		auth:    auth.NewHTTPHandler(authService, log),
	}
	return newRouter(h, routerOptions{
		log:          log,
		validator:    stubValidator{},
		ready:        ready,
		maxBodyBytes: 1 << 20,
	}), m
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestRouter_PublicRoutes(t *testing.T) {
	router, m := newTestRouter(t, func(context.Context) error { return nil })

	m.genres.EXPECT().List(gomock.Any(), 0, 10).Return([]genre.Genre{{ID: 1, Name: "Fantasy"}}, nil)
	w := serve(router, testutil.NewRequest(http.MethodGet, "/genres", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	m.books.EXPECT().List(gomock.Any(), 0, 10).Return([]book.Book{}, nil)
	w = serve(router, testutil.NewRequest(http.MethodGet, "/books", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	m.authors.EXPECT().GetByID(gomock.Any(), int64(3)).Return(author.Author{}, author.ErrNotFound)
	w = serve(router, testutil.NewRequest(http.MethodGet, "/authors/3", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, testutil.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t, func(context.Context) error { return nil })

	routes := []struct{ method, path string }{
		{http.MethodGet, "/readers"},
		{http.MethodGet, "/readers/1"},
		{http.MethodDelete, "/readers/1"},
		{http.MethodPost, "/books"},
		{http.MethodPut, "/books/1"},
		{http.MethodDelete, "/books/1"},
		{http.MethodPost, "/authors"},
		{http.MethodPut, "/authors/1"},
		{http.MethodDelete, "/authors/1"},
		{http.MethodPost, "/genres"},
		{http.MethodGet, "/loans"},
		{http.MethodPost, "/loans"},
		{http.MethodPost, "/loans/1/return"},
		{http.MethodPost, "/auth/logout"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := serve(router, testutil.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

			w = serve(router, testutil.NewRequestWithAuth(rt.method, rt.path, nil, "forged"))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_ProtectedRouteWithToken(t *testing.T) {
	router, m := newTestRouter(t, func(context.Context) error { return nil })

	m.loans.EXPECT().List(gomock.Any(), 0, 10).Return([]loan.Loan{}, nil)
	w := serve(router, testutil.NewRequestWithAuth(http.MethodGet, "/loans", nil, validToken))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t, func(context.Context) error { return nil })

	w := serve(router, testutil.NewRequest(http.MethodPatch, "/genres", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_Readiness(t *testing.T) {
	router, _ := newTestRouter(t, func(context.Context) error { return errors.New("down") })

	w := serve(router, testutil.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
