// Package migrations embeds the goose SQL migrations and applies them.
package migrations

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

// Dir is the path inside FS that goose reads.
const Dir = "."

// Setup points goose at the embedded migrations.
func Setup() error {
	goose.SetBaseFS(FS)
	return goose.SetDialect("postgres")
}

// Up applies all pending migrations using a database/sql handle borrowed
// from pool.
func Up(ctx context.Context, pool *pgxpool.Pool) error {
	if err := Setup(); err != nil {
		return err
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.UpContext(ctx, db, Dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
