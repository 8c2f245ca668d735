package testdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/sqlstore"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// SQLiteConfig returns a database configuration pointing at a fresh SQLite
// file inside the test's temporary directory.
func SQLiteConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()

	return config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		Path:            filepath.Join(t.TempDir(), "tasks.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}
}

// NewSQLiteTaskStore opens a TaskStore on a fresh SQLite database with the
// tasks table already created. The store is closed when the test ends.
func NewSQLiteTaskStore(t *testing.T) *sqlstore.TaskStore {
	t.Helper()

	return newTaskStore(t, SQLiteConfig(t), sqlstore.SQLite)
}

func newTaskStore(t *testing.T, cfg config.DatabaseConfig, dialect sqlstore.Dialect) *sqlstore.TaskStore {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlstore.Open(ctx, cfg, nil)
	require.NoError(t, err, "failed to open test database")

	taskStore := sqlstore.NewTaskStore(db, dialect, nil)
	t.Cleanup(func() {
		if err := taskStore.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	require.NoError(t, taskStore.EnsureSchema(ctx), "failed to create tasks table")
	return taskStore
}
