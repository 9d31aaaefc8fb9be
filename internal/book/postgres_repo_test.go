package book

import (
	"context"
	"testing"
	"time"

	"libraryapi/internal/logging"
	"libraryapi/internal/platform/postgres"
	"libraryapi/internal/testutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()
	_, err := pool.Exec(ctx, `INSERT INTO authors (name) VALUES ('Borges'), ('Bioy Casares')`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO genres (name) VALUES ('Fiction'), ('Fantasy'), ('Essay')`)
	require.NoError(t, err)
}

func countRows(t *testing.T, pool *pgxpool.Pool, sql string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), sql, args...).Scan(&n))
	return n
}

func refIDs(refs []Ref) []int64 {
	ids := make([]int64, len(refs))
	for i, r := range refs {
		ids[i] = r.ID
	}
	return ids
}

func TestPostgresRepo_CreateWithAssociations(t *testing.T) {
	pool := testutil.NewTestPool(t)
	seedCatalog(t, pool)
	svc := NewService(NewPostgresRepo(pool, 5*time.Second), logging.Nop())
	ctx := context.Background()

	desc := "Stories"
	b, err := svc.Create(ctx, Input{
		Title:           "Ficciones",
		Description:     &desc,
		PublicationDate: "1944-01-01",
		AvailableCopies: 3,
		AuthorIDs:       []int64{1, 2, 1},
		GenreIDs:        []int64{1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "1944-01-01", b.PublicationDate)
	assert.Equal(t, []int64{1, 2}, refIDs(b.Authors))
	assert.Equal(t, "Borges", b.Authors[0].Name)
	assert.Equal(t, []int64{1, 2}, refIDs(b.Genres))

	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Authors, got.Authors)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Stories", *got.Description)
}

func TestPostgresRepo_UnknownAuthorPersistsNothing(t *testing.T) {
	pool := testutil.NewTestPool(t)
	seedCatalog(t, pool)
	repo := NewPostgresRepo(pool, 5*time.Second)
	ctx := context.Background()

	_, err := repo.Create(ctx, Input{Title: "Ghost", PublicationDate: "2000-01-01", AuthorIDs: []int64{99}})
	assert.ErrorIs(t, err, ErrUnknownAuthors)

	_, err = repo.Create(ctx, Input{Title: "Ghost", PublicationDate: "2000-01-01", AuthorIDs: []int64{1}, GenreIDs: []int64{1, 42}})
	assert.ErrorIs(t, err, ErrUnknownGenres)

	assert.Zero(t, countRows(t, pool, `SELECT COUNT(*) FROM books`))
	assert.Zero(t, countRows(t, pool, `SELECT COUNT(*) FROM book_authors`))
}

func TestPostgresRepo_UpdateReplacesGenres(t *testing.T) {
	pool := testutil.NewTestPool(t)
	seedCatalog(t, pool)
	repo := NewPostgresRepo(pool, 5*time.Second)
	ctx := context.Background()

	b, err := repo.Create(ctx, Input{Title: "Ficciones", PublicationDate: "1944-01-01", AvailableCopies: 1,
		AuthorIDs: []int64{1}, GenreIDs: []int64{1, 2}})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, b.ID, Input{Title: "Ficciones (rev.)", PublicationDate: "1956-01-01", AvailableCopies: 4,
		AuthorIDs: []int64{2}, GenreIDs: []int64{3}})
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, refIDs(updated.Genres))
	assert.Equal(t, []int64{2}, refIDs(updated.Authors))
	assert.Equal(t, 4, updated.AvailableCopies)
	assert.Equal(t, 1, countRows(t, pool, `SELECT COUNT(*) FROM book_genres WHERE book_id = $1`, b.ID))

	// a failed update leaves the previous state untouched
	_, err = repo.Update(ctx, b.ID, Input{Title: "Broken", PublicationDate: "1956-01-01", GenreIDs: []int64{77}})
	assert.ErrorIs(t, err, ErrUnknownGenres)
	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ficciones (rev.)", got.Title)
	assert.Equal(t, []int64{3}, refIDs(got.Genres))

	_, err = repo.Update(ctx, 9999, Input{Title: "x", PublicationDate: "2000-01-01"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepo_DeleteCascades(t *testing.T) {
	pool := testutil.NewTestPool(t)
	seedCatalog(t, pool)
	repo := NewPostgresRepo(pool, 5*time.Second)
	ctx := context.Background()

	b, err := repo.Create(ctx, Input{Title: "Ficciones", PublicationDate: "1944-01-01", AvailableCopies: 1,
		AuthorIDs: []int64{1}, GenreIDs: []int64{1}})
	require.NoError(t, err)

	var readerID int64
	require.NoError(t, pool.QueryRow(ctx,
		`INSERT INTO readers (name, email, password_hash) VALUES ('R', 'r@example.com', 'x') RETURNING id`).Scan(&readerID))
	_, err = pool.Exec(ctx, `INSERT INTO loans (book_id, reader_id, due_date) VALUES ($1, $2, CURRENT_DATE + 14)`, b.ID, readerID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, b.ID))
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), ErrNotFound)

	assert.Zero(t, countRows(t, pool, `SELECT COUNT(*) FROM book_authors WHERE book_id = $1`, b.ID))
	assert.Zero(t, countRows(t, pool, `SELECT COUNT(*) FROM loans WHERE book_id = $1`, b.ID))
	assert.Equal(t, 2, countRows(t, pool, `SELECT COUNT(*) FROM authors`))
}

func TestPostgresRepo_ListPagesWithRefs(t *testing.T) {
	pool := testutil.NewTestPool(t)
	seedCatalog(t, pool)
	repo := NewPostgresRepo(pool, 5*time.Second)
	ctx := context.Background()

	for i, title := range []string{"A", "B", "C"} {
		_, err := repo.Create(ctx, Input{Title: title, PublicationDate: "2000-01-01", AuthorIDs: []int64{int64(i%2 + 1)}})
		require.NoError(t, err)
	}

	page, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "B", page[0].Title)
	assert.Equal(t, []int64{2}, refIDs(page[0].Authors))
	assert.Equal(t, []int64{1}, refIDs(page[1].Authors))
	assert.NotNil(t, page[0].Genres)

	empty, err := repo.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPostgresRepo_NegativeCopiesRejectedByCheck(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewPostgresRepo(pool, 5*time.Second)
	ctx := context.Background()

	_, err := repo.Create(ctx, Input{Title: "Minus", PublicationDate: "2000-01-01", AvailableCopies: -1})
	assert.ErrorIs(t, err, ErrInvalidCopies)
	assert.Zero(t, countRows(t, pool, `SELECT COUNT(*) FROM books`))

	b, err := repo.Create(ctx, Input{Title: "Plus", PublicationDate: "2000-01-01", AvailableCopies: 1})
	require.NoError(t, err)
	_, err = repo.Update(ctx, b.ID, Input{Title: "Plus", PublicationDate: "2000-01-01", AvailableCopies: -3})
	assert.ErrorIs(t, err, ErrInvalidCopies)
}

// Simulates an author or genre deleted between resolveIDs and the insert.
func TestInsertAssociations_VanishedRefsAreUnknown(t *testing.T) {
	pool := testutil.NewTestPool(t)
	seedCatalog(t, pool)
	repo := NewPostgresRepo(pool, 5*time.Second)
	ctx := context.Background()

	b, err := repo.Create(ctx, Input{Title: "Ficciones", PublicationDate: "1944-01-01"})
	require.NoError(t, err)

	err = postgres.WithTx(ctx, pool, func(tx pgx.Tx) error {
		return insertAssociations(ctx, tx, b.ID, Input{AuthorIDs: []int64{1, 77}})
	})
	assert.ErrorIs(t, err, ErrUnknownAuthors)

	err = postgres.WithTx(ctx, pool, func(tx pgx.Tx) error {
		return insertAssociations(ctx, tx, b.ID, Input{GenreIDs: []int64{77}})
	})
	assert.ErrorIs(t, err, ErrUnknownGenres)

	assert.Zero(t, countRows(t, pool, `SELECT COUNT(*) FROM book_authors`))
}
