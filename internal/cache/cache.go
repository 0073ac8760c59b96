// Package cache provides the TTL key-value store fronting the feed pipeline.
// The cache is a pure optimization: every failure mode is recoverable and
// callers are expected to fail open to a fresh computation.
package cache

import (
	"context"
	"time"
)

// Store is a TTL-capable key-value cache.
type Store interface {
	// Get returns the cached value for key and whether it was present.
	// A miss is (nil, false, nil); errors indicate the store itself failed.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
