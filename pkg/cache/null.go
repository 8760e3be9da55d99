package cache

import (
	"context"
	"time"
)

// NullCache backs STATCARD_CACHE=none and --no-cache. Every lookup misses,
// so each card is fetched from GitHub and rendered again.
type NullCache struct {
	reason string
}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache {
	return &NullCache{}
}

// Disabled returns a NullCache that records why caching is off, for
// example "--no-cache" or "no cache directory".
func Disabled(reason string) *NullCache {
	return &NullCache{reason: reason}
}

// Reason reports why caching was disabled. Empty when unknown.
func (c *NullCache) Reason() string { return c.reason }

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set drops the card or response.
func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (c *NullCache) Delete(context.Context, string) error { return nil }

func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
