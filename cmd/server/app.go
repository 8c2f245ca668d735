package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/sqlstore"
	"github.com/phrazzld/tasks-api/internal/store"
)

// application holds the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	taskStore store.TaskStore
}

// newApplication creates a new application instance around an open connection pool.
// The returned application owns db and closes it during cleanup.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB, dialect sqlstore.Dialect) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &application{
		config:    cfg,
		logger:    logger,
		taskStore: sqlstore.NewTaskStore(db, dialect, logger),
	}, nil
}

// Run ensures the schema exists, then serves HTTP until ctx is canceled or
// the process receives SIGINT/SIGTERM.
func (app *application) Run(ctx context.Context) error {
	// The readiness route retries the schema call, so startup continues on failure.
	if err := app.taskStore.EnsureSchema(ctx); err != nil {
		app.logger.Error("Failed to ensure tasks schema at startup", "error", err)
	}

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskStore != nil {
		if err := app.taskStore.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
