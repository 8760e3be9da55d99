// Package cache provides byte-oriented caches for GitHub API responses and
// rendered cards.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: JSON entry files under a directory, for CLI usage
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: caching disabled
//
// Keys are built by a [Keyer] so that the CLI, the server and the sync job
// agree on the key layout.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with a per-entry TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value and true on a hit. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default lifetimes per kind of cached value.
const (
	TTLHTTP = time.Hour // raw GitHub API responses
	TTLCard = time.Hour // rendered cards
)
