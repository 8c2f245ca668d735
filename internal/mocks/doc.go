// Package mocks provides hand-written test doubles for the interfaces
// consumed by the HTTP layer. Each mock records its calls and lets a test
// override behavior per method with a function field.
package mocks
