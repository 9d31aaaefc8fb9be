package main

import (
	"os"
)

// createDir is where "create" writes new migration files. Migrations are
// embedded from internal/platform/migrations, so that is the default.
func createDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "internal/platform/migrations"
}
