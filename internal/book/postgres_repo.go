package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryapi/internal/apperr"
	"libraryapi/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	bookColumns = `id, title, description, to_char(publication_date, 'YYYY-MM-DD'), available_copies, created_at, updated_at`

	countAuthorsSQL = `SELECT COUNT(*) FROM authors WHERE id = ANY($1)`
	countGenresSQL  = `SELECT COUNT(*) FROM genres WHERE id = ANY($1)`

	insertAuthorsSQL = `INSERT INTO book_authors (book_id, author_id) SELECT $1, unnest($2::bigint[])`
	insertGenresSQL  = `INSERT INTO book_genres (book_id, genre_id) SELECT $1, unnest($2::bigint[])`

	authorRefsSQL = `
		SELECT ba.book_id, a.id, a.name
		FROM book_authors ba
		JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id = ANY($1)
		ORDER BY ba.book_id, a.id`
	genreRefsSQL = `
		SELECT bg.book_id, g.id, g.name
		FROM book_genres bg
		JOIN genres g ON g.id = bg.genre_id
		WHERE bg.book_id = ANY($1)
		ORDER BY bg.book_id, g.id`
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
	tracer  trace.Tracer
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout, tracer: otel.Tracer("libraryapi/book")}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// spanError marks the span failed for unexpected errors only. Domain
// refusals are recorded as an event so they do not count as failures.
func spanError(span trace.Span, err error) error {
	switch {
	case err == nil:
	case apperr.Known(err):
		span.AddEvent("refused", trace.WithAttributes(attribute.String("reason", err.Error())))
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// rowError maps constraint violations on the books row to domain errors.
func rowError(op string, err error) error {
	if postgres.IsCheckViolation(err) {
		return ErrInvalidCopies
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *PostgresRepo) Create(ctx context.Context, in Input) (Book, error) {
	ctx, span := r.tracer.Start(ctx, "book.create", trace.WithAttributes(
		attribute.Int("book.author_count", len(in.AuthorIDs)),
		attribute.Int("book.genre_count", len(in.GenreIDs)),
	))
	defer span.End()
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const sql = `
		INSERT INTO books (title, description, publication_date, available_copies)
		VALUES ($1, $2, $3::text::date, $4)
		RETURNING id`

	var b Book
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := resolveIDs(ctx, tx, in); err != nil {
			return err
		}
		var id int64
		if err := tx.QueryRow(ctx, sql, in.Title, in.Description, in.PublicationDate, in.AvailableCopies).Scan(&id); err != nil {
			return rowError("insert book", err)
		}
		if err := insertAssociations(ctx, tx, id, in); err != nil {
			return err
		}
		var err error
		b, err = getByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return Book{}, spanError(span, err)
	}
	span.SetAttributes(attribute.Int64("book.id", b.ID))
	return b, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, in Input) (Book, error) {
	ctx, span := r.tracer.Start(ctx, "book.update", trace.WithAttributes(attribute.Int64("book.id", id)))
	defer span.End()
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const sql = `
		UPDATE books
		SET title = $2, description = $3, publication_date = $4::text::date,
		    available_copies = $5, updated_at = now()
		WHERE id = $1`

	var b Book
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, sql, id, in.Title, in.Description, in.PublicationDate, in.AvailableCopies)
		if err != nil {
			return rowError("update book", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		if err := resolveIDs(ctx, tx, in); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM book_authors WHERE book_id = $1`, id); err != nil {
			return fmt.Errorf("clear book authors: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = $1`, id); err != nil {
			return fmt.Errorf("clear book genres: %w", err)
		}
		if err := insertAssociations(ctx, tx, id, in); err != nil {
			return err
		}
		b, err = getByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return Book{}, spanError(span, err)
	}
	return b, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return getByID(ctx, r.db, id)
}

func (r *PostgresRepo) List(ctx context.Context, offset, limit int) ([]Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	books, err := pgx.CollectRows(rows, scanBook)
	if err != nil {
		return nil, fmt.Errorf("scan books: %w", err)
	}
	if err := attachRefs(ctx, r.db, books); err != nil {
		return nil, err
	}
	return books, nil
}

// Delete removes the book. Association rows and loans cascade.
func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	ctx, span := r.tracer.Start(ctx, "book.delete", trace.WithAttributes(attribute.Int64("book.id", id)))
	defer span.End()
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return spanError(span, fmt.Errorf("delete book: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBook(row pgx.CollectableRow) (Book, error) {
	b := Book{Authors: []Ref{}, Genres: []Ref{}}
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.PublicationDate, &b.AvailableCopies, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func getByID(ctx context.Context, db postgres.DBTX, id int64) (Book, error) {
	rows, err := db.Query(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
	if err != nil {
		return Book{}, fmt.Errorf("select book: %w", err)
	}
	b, err := pgx.CollectExactlyOneRow(rows, scanBook)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("select book: %w", err)
	}
	books := []Book{b}
	if err := attachRefs(ctx, db, books); err != nil {
		return Book{}, err
	}
	return books[0], nil
}

// resolveIDs fails when any requested author or genre id is missing. The
// ids are expected to be de-duplicated already.
func resolveIDs(ctx context.Context, tx pgx.Tx, in Input) error {
	if n, err := count(ctx, tx, countAuthorsSQL, in.AuthorIDs); err != nil {
		return fmt.Errorf("resolve authors: %w", err)
	} else if n != len(in.AuthorIDs) {
		return ErrUnknownAuthors
	}
	if n, err := count(ctx, tx, countGenresSQL, in.GenreIDs); err != nil {
		return fmt.Errorf("resolve genres: %w", err)
	} else if n != len(in.GenreIDs) {
		return ErrUnknownGenres
	}
	return nil
}

func count(ctx context.Context, tx pgx.Tx, sql string, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	err := tx.QueryRow(ctx, sql, ids).Scan(&n)
	return n, err
}

// insertAssociations links the book to its authors and genres. The ids were
// counted by resolveIDs, but an author or genre deleted since then still
// fails the foreign key; that is reported like an unknown id.
func insertAssociations(ctx context.Context, tx pgx.Tx, bookID int64, in Input) error {
	if len(in.AuthorIDs) > 0 {
		if _, err := tx.Exec(ctx, insertAuthorsSQL, bookID, in.AuthorIDs); err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return ErrUnknownAuthors
			}
			return fmt.Errorf("insert book authors: %w", err)
		}
	}
	if len(in.GenreIDs) > 0 {
		if _, err := tx.Exec(ctx, insertGenresSQL, bookID, in.GenreIDs); err != nil {
			if postgres.IsForeignKeyViolation(err) {
				return ErrUnknownGenres
			}
			return fmt.Errorf("insert book genres: %w", err)
		}
	}
	return nil
}

// attachRefs loads the author and genre names for books in two queries.
func attachRefs(ctx context.Context, db postgres.DBTX, books []Book) error {
	if len(books) == 0 {
		return nil
	}
	ids := make([]int64, len(books))
	index := make(map[int64]int, len(books))
	for i, b := range books {
		ids[i] = b.ID
		index[b.ID] = i
	}

	load := func(sql string, add func(i int, ref Ref)) error {
		rows, err := db.Query(ctx, sql, ids)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var bookID int64
			var ref Ref
			if err := rows.Scan(&bookID, &ref.ID, &ref.Name); err != nil {
				return err
			}
			add(index[bookID], ref)
		}
		return rows.Err()
	}

	if err := load(authorRefsSQL, func(i int, ref Ref) { books[i].Authors = append(books[i].Authors, ref) }); err != nil {
		return fmt.Errorf("load book authors: %w", err)
	}
	if err := load(genreRefsSQL, func(i int, ref Ref) { books[i].Genres = append(books[i].Genres, ref) }); err != nil {
		return fmt.Errorf("load book genres: %w", err)
	}
	return nil
}
