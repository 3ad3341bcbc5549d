package main

// Manage the database schema:
//   go run ./cmd/migrate          apply pending migrations
//   go run ./cmd/migrate down     roll back the most recent one
//   go run ./cmd/migrate status   print per-migration state

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"jobmatch-backend/internal/shared/config"
	"jobmatch-backend/internal/shared/storage/db"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("migrate: connect: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := run(ctx, command, sqlDB); err != nil {
		log.Printf("migrate: %s: %v", command, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, sqlDB *sql.DB) error {
	switch command {
	case "up":
		if err := db.Migrate(ctx, sqlDB); err != nil {
			return err
		}
		version, err := db.SchemaVersion(ctx, sqlDB)
		if err != nil {
			return err
		}
		fmt.Printf("schema at version %d\n", version)
		return nil
	case "down":
		return db.Rollback(ctx, sqlDB)
	case "status":
		return db.MigrationStatus(ctx, sqlDB)
	default:
		return fmt.Errorf("unknown command %q (want up, down, or status)", command)
	}
}
