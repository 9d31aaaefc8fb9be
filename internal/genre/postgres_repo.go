package genre

import (
	"context"
	"fmt"
	"time"

	"libraryapi/internal/platform/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

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

func (r *PostgresRepo) Create(ctx context.Context, g *Genre) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(ctx, `INSERT INTO genres (name) VALUES ($1) RETURNING id`, g.Name).Scan(&g.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err, "genres_name_key") {
			return ErrNameTaken
		}
		return fmt.Errorf("insert genre: %w", err)
	}
	return nil
}

func (r *PostgresRepo) NameExists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM genres WHERE name = $1)`, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check genre name: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepo) List(ctx context.Context, offset, limit int) ([]Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(ctx, `SELECT id, name FROM genres ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	out := []Genre{}
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
