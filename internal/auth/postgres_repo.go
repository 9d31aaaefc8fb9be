package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo keeps revoked token ids in the revoked_tokens table.
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

func (r *PostgresRepo) Revoke(ctx context.Context, jti string, readerID int64, expiresAt time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
	INSERT INTO revoked_tokens (jti, reader_id, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (jti) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, jti, readerID, expiresAt)
	return err
}

func (r *PostgresRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
	SELECT EXISTS(
		SELECT 1 FROM revoked_tokens
		WHERE jti = $1 AND expires_at > now()
	)
	`
	var revoked bool
	err := r.db.QueryRow(ctx, query, jti).Scan(&revoked)
	return revoked, err
}

func (r *PostgresRepo) CleanupExpired(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
