package db

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// RunMigrations applies pending migrations. An empty dir uses the migrations compiled into the binary.
func RunMigrations(db *sql.DB, dir string, logger *slog.Logger) error {
	if dir == "" {
		goose.SetBaseFS(embeddedMigrations)
		dir = "migrations"
	} else {
		goose.SetBaseFS(nil)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	logger.Info("Checking for pending migrations...", "dir", dir)

	if err := goose.Up(db, dir); err != nil {
		logger.Error("Failed to run migrations", "error", err.Error())
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations completed successfully")
	return nil
}

func MigrationFiles() embed.FS {
	return embeddedMigrations
}
