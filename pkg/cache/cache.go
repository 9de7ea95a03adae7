// Package cache stores rendered diagrams keyed by what produced them.
//
// Rendering through WebAssembly Graphviz takes a noticeable moment, and the
// documentation diagram rarely changes. Artifacts are therefore cached under
// a key derived from the DOT source, the output format and the backend
// ([ArtifactKey]); any change to the graph or theme changes the DOT source
// and misses the cache.
//
// [FileCache] is used by the CLI; [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored data and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
