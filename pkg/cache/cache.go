// Package cache stores rendered artifacts keyed by content hash.
//
// Rendering a graph through Graphviz is the only expensive step outside the
// core, so its SVG output is cached by the hash of the DOT source. Three
// backends share the [Cache] interface:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps JSON entries under a local directory for the CLI
//   - [RedisCache] shares entries between server instances
//
// [Scoped] prefixes keys and [Instrument] reports hits and misses through
// the observability cache hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
