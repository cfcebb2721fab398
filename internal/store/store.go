package store

import "context"

// Store is the key-value persistence contract every dataset goes through.
// Values are JSON-serialized; there is no schema versioning and writes are
// last-write-wins, matching the single-device storage model of the app.
type Store interface {
	// Load reads the value under key into v. The boolean reports whether the
	// key existed; a missing key is not an error.
	Load(ctx context.Context, key string, v any) (bool, error)

	// Save serializes v and writes it under key, replacing any prior value.
	Save(ctx context.Context, key string, v any) error
}
