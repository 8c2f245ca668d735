//go:build integration

package testdb

import (
	"context"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/sqlstore"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// GetTestDatabaseURL returns the database URL for tests from DATABASE_URL.
func GetTestDatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// dockerAvailable checks whether the Docker daemon is reachable.
// testcontainers-go panics rather than returning an error when Docker
// is not installed, so we check for it up-front.
func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

// PostgresConfig returns a configuration for a PostgreSQL test database.
// DATABASE_URL is used when set; otherwise a postgres:16-alpine container is
// started and terminated when the test ends. The test is skipped when neither
// is available.
func PostgresConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:          config.DriverPostgres,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Minute,
	}

	if url := GetTestDatabaseURL(); url != "" {
		cfg.URL = url
		return cfg
	}

	if !dockerAvailable() {
		t.Skip("DATABASE_URL not set and Docker not available, skipping PostgreSQL tests")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("tasks"),
		postgres.WithUsername("tasks"),
		postgres.WithPassword("tasks"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Skipf("failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	cfg.URL = connStr
	return cfg
}

// NewPostgresTaskStore opens a TaskStore on a PostgreSQL test database with
// the tasks table created and emptied.
func NewPostgresTaskStore(t *testing.T) *sqlstore.TaskStore {
	t.Helper()

	cfg := PostgresConfig(t)
	taskStore := newTaskStore(t, cfg, sqlstore.Postgres)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	tasks, err := taskStore.ListAll(ctx)
	if err != nil {
		t.Fatalf("failed to list tasks for cleanup: %v", err)
	}
	for _, task := range tasks {
		if err := taskStore.Delete(ctx, task.ID); err != nil {
			t.Fatalf("failed to clean task %d: %v", task.ID, err)
		}
	}
	return taskStore
}
