package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"libraryapi/internal/config"
	"libraryapi/internal/logging"
	"libraryapi/internal/platform/migrations"
	"libraryapi/internal/platform/postgres"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const usage = "up, down, down-to <version>, status, version, create <name>"

func main() {
	command := flag.String("command", "up", "Migration command: "+usage)
	name := flag.String("name", "", "Name for 'create', target version for 'down-to'")
	flag.Parse()

	config.LoadEnvFiles()
	log := logging.New(os.Stderr, "info", "text")
	ctx := context.Background()

	if *command == "create" {
		if err := create(*name); err != nil {
			log.Error(ctx, "create migration failed", "error", err)
			os.Exit(1)
		}
		return
	}

	dsn := config.DSNFromEnv()
	pool, err := postgres.Open(ctx, dsn, 5*time.Second)
	if err != nil {
		log.Error(ctx, "failed to connect to database", "dsn", config.RedactDSN(dsn), "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := migrations.Setup(); err != nil {
		log.Error(ctx, "goose setup failed", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, db, *command, *name); err != nil {
		log.Error(ctx, "migration command failed", "command", *command, "error", err)
		os.Exit(1)
	}
	log.Info(ctx, "migration command finished", "command", *command)
}

func run(ctx context.Context, db *sql.DB, command, arg string) error {
	switch command {
	case "up":
		return goose.UpContext(ctx, db, migrations.Dir)
	case "down":
		return goose.DownContext(ctx, db, migrations.Dir)
	case "down-to":
		v, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("down-to needs a numeric -name: %w", err)
		}
		return goose.DownToContext(ctx, db, migrations.Dir, v)
	case "status":
		return goose.StatusContext(ctx, db, migrations.Dir)
	case "version":
		return goose.VersionContext(ctx, db, migrations.Dir)
	default:
		return fmt.Errorf("unknown command %q, use: %s", command, usage)
	}
}

// create writes a new SQL migration skeleton to the source tree. It does not
// touch the database.
func create(name string) error {
	if name == "" {
		return fmt.Errorf("name is required for 'create'")
	}
	goose.SetBaseFS(nil)
	goose.SetSequential(true)
	return goose.Create(nil, createDir(), name, "sql")
}
