package reader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryapi/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const emailConstraint = "readers_email_key"

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

func (r *PostgresRepo) Create(ctx context.Context, rd *Reader) error {
	const sql = `
		INSERT INTO readers (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(ctx, sql, rd.Name, rd.Email, rd.PasswordHash).Scan(&rd.ID, &rd.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err, emailConstraint) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert reader: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Reader, error) {
	const sql = `SELECT id, name, email, password_hash, created_at FROM readers WHERE id = $1`
	return r.getOne(ctx, sql, id)
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (Reader, error) {
	const sql = `SELECT id, name, email, password_hash, created_at FROM readers WHERE email = $1`
	return r.getOne(ctx, sql, email)
}

func (r *PostgresRepo) getOne(ctx context.Context, sql string, arg any) (Reader, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rd Reader
	err := r.db.QueryRow(ctx, sql, arg).Scan(&rd.ID, &rd.Name, &rd.Email, &rd.PasswordHash, &rd.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Reader{}, ErrNotFound
		}
		return Reader{}, fmt.Errorf("select reader: %w", err)
	}
	return rd, nil
}

func (r *PostgresRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	const sql = `SELECT EXISTS (SELECT 1 FROM readers WHERE email = $1)`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	var exists bool
	if err := r.db.QueryRow(ctx, sql, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepo) List(ctx context.Context, offset, limit int) ([]Reader, error) {
	const sql = `
		SELECT id, name, email, password_hash, created_at
		FROM readers
		ORDER BY id
		LIMIT $1 OFFSET $2`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list readers: %w", err)
	}
	defer rows.Close()

	out := []Reader{}
	for rows.Next() {
		var rd Reader
		if err := rows.Scan(&rd.ID, &rd.Name, &rd.Email, &rd.PasswordHash, &rd.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	return out, rows.Err()
}

// Delete removes the reader; their loans go with them via ON DELETE CASCADE.
func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(ctx, `DELETE FROM readers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reader: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
