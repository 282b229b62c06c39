package store

import "context"

// Store is the persistent key/value text store the app's collections live in.
// A Write replaces the whole value under a key; there is no concurrency
// control across a read-modify-write sequence. Within one instance that is
// safe because mutations run to completion per request; across instances the
// protocol is last-writer-wins (see the bus bridge for how siblings converge).
type Store interface {
	// Read returns the value for key and whether it was present.
	Read(ctx context.Context, key string) (string, bool, error)
	// Write replaces the entire value for key.
	Write(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
