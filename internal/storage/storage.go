// Package storage provides durable object storage for uploaded source
// documents, addressed by a caller-chosen key. Two backends exist: a local
// upload directory and a MinIO bucket, selected by configuration.
package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned when the requested key does not exist.
var ErrObjectNotFound = errors.New("stored object not found")

// Storage is the object storage contract shared by the web tier (save,
// delete on compensation) and the worker (load).
type Storage interface {
	// Save stores data under the given key, overwriting any previous
	// object, and returns the key.
	Save(ctx context.Context, key string, data []byte) (string, error)

	// Load retrieves the object stored under key.
	// Returns ErrObjectNotFound if it does not exist.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object stored under key. Deleting a missing
	// object is not an error: the compensation path must be idempotent.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}
