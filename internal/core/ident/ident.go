// Package ident generates opaque, stable entity ids.
//
// Ids are UUIDv7 strings, so freshly generated ids sort after older ones.
// Nothing in the engine depends on that ordering; it just keeps the
// database pleasant to inspect.
package ident

import "github.com/google/uuid"

// NewID returns a fresh opaque entity id.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
