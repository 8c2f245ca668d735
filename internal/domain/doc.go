// Package domain contains the core business entities and errors of the
// tasks API. It is independent of any specific storage engine or delivery
// mechanism.
package domain
