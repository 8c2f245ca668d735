// Package testdb provides throwaway databases for tests.
//
// By default tests run against a SQLite file created in t.TempDir(), so the
// store and HTTP tests need no external services. Building with the
// integration tag adds PostgreSQL helpers that use DATABASE_URL when set and
// otherwise start a disposable container with testcontainers-go.
//
// Basic usage:
//
//	func TestMyFeature(t *testing.T) {
//	    taskStore := testdb.NewSQLiteTaskStore(t)
//	    // taskStore is closed automatically when the test ends
//	}
package testdb
