// Package durable defines the persistent key-value contract that backs the
// offline cache.
//
// # Overview
//
// A Store is schema-less: keys are strings, values are opaque bytes. Every
// operation may fail (quota, serialization, backend outage); callers in the
// cache layer treat all failures as non-fatal. Implementations live in the
// sub-packages:
//
//   - sqlstore: SQLite or PostgreSQL table managed by goose migrations
//   - filestore: one file per key on the local filesystem
//   - s3store:   objects in an S3-compatible bucket
//   - sealed:    decorator that encrypts values of any Store at rest
//
// # Errors
//
// Get and Update report a missing key as ErrNotFound (Update passes
// found=false to the mutator instead). Delete of a missing key succeeds.
package durable

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("not found")

// Mutator computes the new value for a key from its current one. found is
// false when the key does not exist yet. Returning an error aborts the update.
type Mutator func(current []byte, found bool) ([]byte, error)

// Store is an asynchronous-friendly, key-addressed persistent store.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Update applies mutate to the stored value in place. Backends that can
	// do so run the read and the write atomically.
	Update(ctx context.Context, key string, mutate Mutator) error
	Delete(ctx context.Context, key string) error
}

// Replace returns a Mutator that ignores the current value.
func Replace(value []byte) Mutator {
	return func([]byte, bool) ([]byte, error) { return value, nil }
}
