// Package cache stores rendered artifacts keyed by content hash.
//
// The CLI uses it to skip Graphviz when a topology's diagram has already been
// rendered: the DOT source fully determines the SVG, so its hash is the key.
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.NewDefaultKeyer().DiagramKey(dot, cache.DiagramKeyOpts{Format: "svg"})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    return data
//	}
//
// [NewNullCache] disables caching without changing call sites.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// Expired or unreadable entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// NewNullCache returns a Cache that stores nothing. The CLI uses it for
// --no-cache and when no cache directory can be created.
func NewNullCache() Cache { return nullCache{} }

type nullCache struct{}

func (nullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (nullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (nullCache) Delete(context.Context, string) error {
	return nil
}

func (nullCache) Close() error {
	return nil
}
