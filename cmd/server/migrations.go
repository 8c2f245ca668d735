package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/platform/sqlstore"
)

// handleMigrations executes a migration command against db.
// It's called from run() when the -migrate flag is set.
func handleMigrations(
	ctx context.Context,
	db *sql.DB,
	dialect sqlstore.Dialect,
	migrateCmd string,
	logger *slog.Logger,
) error {
	logger.Info("Executing migrations",
		"command", migrateCmd,
		"dialect", dialect.Name())

	version, err := sqlstore.Migrate(ctx, db, dialect, migrateCmd, logger)
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", migrateCmd, err)
	}

	logger.Info("Migrations finished", "command", migrateCmd, "version", version)
	return nil
}
