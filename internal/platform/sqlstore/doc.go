// Package sqlstore provides the database/sql implementation of the
// store.TaskStore interface. It owns all SQL text and connection handling,
// supports PostgreSQL (via pgx) and SQLite (via modernc.org/sqlite), maps
// driver errors onto store errors, and runs the embedded goose migrations.
package sqlstore
