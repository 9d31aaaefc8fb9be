package author

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryapi/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const nameConstraint = "authors_name_key"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const selectColumns = `id, name, biography, to_char(birth_date, 'YYYY-MM-DD')`

func scanAuthor(row pgx.Row) (Author, error) {
	var a Author
	err := row.Scan(&a.ID, &a.Name, &a.Biography, &a.BirthDate)
	return a, err
}

func (r *PostgresRepo) Create(ctx context.Context, a *Author) error {
	const sql = `
		INSERT INTO authors (name, biography, birth_date)
		VALUES ($1, $2, $3::text::date)
		RETURNING id`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(ctx, sql, a.Name, a.Biography, a.BirthDate).Scan(&a.ID); err != nil {
		if postgres.IsUniqueViolation(err, nameConstraint) {
			return ErrNameTaken
		}
		return fmt.Errorf("insert author: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Author, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	a, err := scanAuthor(r.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM authors WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Author{}, ErrNotFound
		}
		return Author{}, fmt.Errorf("select author: %w", err)
	}
	return a, nil
}

func (r *PostgresRepo) List(ctx context.Context, offset, limit int) ([]Author, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+selectColumns+` FROM authors ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	out := []Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, a *Author) error {
	const sql = `
		UPDATE authors
		SET name = $2, biography = $3, birth_date = $4::text::date
		WHERE id = $1`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(ctx, sql, a.ID, a.Name, a.Biography, a.BirthDate)
	if err != nil {
		if postgres.IsUniqueViolation(err, nameConstraint) {
			return ErrNameTaken
		}
		return fmt.Errorf("update author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the author. book_authors rows cascade; the books stay.
func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	const sql = `SELECT EXISTS (SELECT 1 FROM authors WHERE name = $1 AND id <> $2)`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	var exists bool
	if err := r.db.QueryRow(ctx, sql, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check author name: %w", err)
	}
	return exists, nil
}
