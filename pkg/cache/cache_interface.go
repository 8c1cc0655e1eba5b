package cache

import (
	"context"
	"time"
)

// Cache is the contract for the caching layer.
// Implementations must tolerate concurrent use; the redis implementation lives
// in internal/infrastructure/cache.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// found=false means cache miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern (e.g. "books:list*").
	DeletePattern(ctx context.Context, pattern string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
