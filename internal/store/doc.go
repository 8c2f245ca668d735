// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the HTTP layer, keeping handlers independent of a specific database
// engine or client library.
package store
