package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/sqlstore"
)

// setupAppDatabase opens and verifies the connection pool for the configured driver.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, sqlstore.Dialect, error) {
	dialect, err := sqlstore.DialectFor(cfg.Database.Driver)
	if err != nil {
		return nil, sqlstore.Dialect{}, err
	}

	db, err := sqlstore.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, sqlstore.Dialect{}, fmt.Errorf("failed to set up database: %w", err)
	}

	return db, dialect, nil
}
