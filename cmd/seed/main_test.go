package main

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"libraryapi/internal/author"
	"libraryapi/internal/book"
	"libraryapi/internal/genre"
	"libraryapi/internal/logging"
	"libraryapi/internal/reader"
	"libraryapi/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_FillsEmptyCatalogOnce(t *testing.T) {
	pool := testutil.NewTestPool(t)
	log := logging.Nop()
	svc := services{
		readers: reader.NewService(reader.NewPostgresRepo(pool, 5*time.Second), log),
		authors: author.NewService(author.NewPostgresRepo(pool, 5*time.Second), log),
		genres:  genre.NewService(genre.NewPostgresRepo(pool, 5*time.Second), log),
		books:   book.NewService(book.NewPostgresRepo(pool, 5*time.Second), log),
	}
	ctx := context.Background()

	require.NoError(t, seed(ctx, svc, log, 5, rand.New(rand.NewSource(1))))

	books, err := svc.books.List(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, books, 5)
	for _, b := range books {
		assert.Len(t, b.Authors, 1)
		assert.NotEmpty(t, b.Genres)
	}

	_, err = svc.readers.GetByEmail(ctx, demoEmail)
	assert.NoError(t, err)

	require.NoError(t, seed(ctx, svc, log, 5, rand.New(rand.NewSource(2))), "second run is a no-op")
	books, err = svc.books.List(ctx, 0, 100)
	require.NoError(t, err)
	assert.Len(t, books, 5)
}
