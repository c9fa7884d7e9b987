package journal

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a record does not exist.
//
// Implementations must return an error that satisfies
// errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("journal: not found")

// Store is the storage abstraction journals write to.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put writes a record atomically, replacing any existing record with the
	// same name.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads a record in full.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns the names of all records with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, name string) error
}
