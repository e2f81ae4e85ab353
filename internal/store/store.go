// Package store persists named application records.
package store

import "context"

// Record keys.
const (
	KeySelectedPersonas = "selectedPersonas"
	KeyCustomPersonas   = "customPersonas"
	KeyMessageHistory   = "messageHistory"
)

// Store loads and saves records by key.
type Store interface {
	// Load decodes the record into dest; it reports false when the record does not exist.
	Load(ctx context.Context, key string, dest interface{}) (bool, error)
	// Save replaces the record.
	Save(ctx context.Context, key string, value interface{}) error
	// Delete removes the record; deleting a missing record is not an error.
	Delete(ctx context.Context, key string) error
}
