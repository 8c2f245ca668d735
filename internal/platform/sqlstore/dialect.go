package sqlstore

import (
	"fmt"

	"github.com/phrazzld/tasks-api/internal/config"
)

// Dialect holds the SQL text for one database engine.
type Dialect struct {
	name string

	// gooseDialect is the dialect name understood by goose.SetDialect.
	gooseDialect string

	// schemaLock serializes concurrent schema creation inside a transaction.
	// Empty when the engine already serializes DDL.
	schemaLock string

	createTable string
	listTasks   string
	getTask     string
	insertTask  string
	updateTask  string
	deleteTask  string
}

// Name returns the configured driver name of the dialect.
func (d Dialect) Name() string {
	return d.name
}

// schemaLockKey is an arbitrary application-wide advisory lock id.
const schemaLockKey = 7318529

// Postgres is the dialect for PostgreSQL through pgx.
var Postgres = Dialect{
	name:         config.DriverPostgres,
	gooseDialect: "postgres",
	schemaLock:   fmt.Sprintf("SELECT pg_advisory_xact_lock(%d)", schemaLockKey),
	createTable: `
		CREATE TABLE IF NOT EXISTS tasks (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(255),
			description TEXT
		)`,
	listTasks:  `SELECT id, title, description FROM tasks`,
	getTask:    `SELECT id, title, description FROM tasks WHERE id = $1`,
	insertTask: `INSERT INTO tasks (title, description) VALUES ($1, $2) RETURNING id`,
	updateTask: `UPDATE tasks SET title = $1, description = $2 WHERE id = $3`,
	deleteTask: `DELETE FROM tasks WHERE id = $1`,
}

// SQLite is the dialect for SQLite through modernc.org/sqlite.
var SQLite = Dialect{
	name:         config.DriverSQLite,
	gooseDialect: "sqlite3",
	createTable: `
		CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title VARCHAR(255),
			description TEXT
		)`,
	listTasks:  `SELECT id, title, description FROM tasks`,
	getTask:    `SELECT id, title, description FROM tasks WHERE id = ?`,
	insertTask: `INSERT INTO tasks (title, description) VALUES (?, ?) RETURNING id`,
	updateTask: `UPDATE tasks SET title = ?, description = ? WHERE id = ?`,
	deleteTask: `DELETE FROM tasks WHERE id = ?`,
}

// DialectFor returns the dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverPostgres:
		return Postgres, nil
	case config.DriverSQLite:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}
