// Package cache stores rendered artifacts between CLI runs.
//
// Rendering SVG through Graphviz is the only expensive step in flowboard,
// so render output is cached under a key derived from the DOT source.
// [FileCache] keeps entries on disk; [NullCache] disables caching.
//
// Keys are opaque strings. [Key] builds them from a prefix and a list of
// JSON-serialisable parts.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
