// Package replitdb contains clients for the Replit key-value database.
//
// [Client] is the blocking client.  [AsyncClient] has the same operations, but
// each of them returns a [Future] immediately and runs in its own goroutine.
// Both are safe for concurrent use and share the underlying HTTP transport
// when created from one another.
package replitdb

import "context"

// Interface is the Replit database interface.
type Interface interface {
	// Get returns val by key from the database.  ok is true if val by key
	// exists.
	Get(ctx context.Context, key string) (val string, ok bool, err error)

	// Set sets val into the database by key.
	Set(ctx context.Context, key, val string) (err error)

	// Delete removes key from the database.  Deleting a key that doesn't
	// exist is not an error.
	Delete(ctx context.Context, key string) (err error)

	// List returns all keys in the database.
	List(ctx context.Context) (keys []string, err error)

	// ListPrefix returns all keys in the database that start with prefix.
	ListPrefix(ctx context.Context, prefix string) (keys []string, err error)

	// Empty removes all keys from the database.  Removed keys are not
	// restored when it fails midway.
	Empty(ctx context.Context) (err error)

	// GetAll returns all key-value pairs from the database.
	GetAll(ctx context.Context) (kvs map[string]string, err error)
}
