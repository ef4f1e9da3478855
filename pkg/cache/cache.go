// Package cache stores computed layouts and rendered artifacts.
//
// Every backend implements [Cache]: [FileCache] for the CLI, [RedisCache]
// for servers sharing one cache, and [NullCache] when caching is off.
// Keys are built by a [Keyer] from the SHA-256 of the resolved chart option
// and the output options, so a changed option never hits a stale entry.
package cache

import (
	"context"
	"time"
)

// Entry lifetimes.
const (
	// TTLLayout is how long a computed layout stays cached.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long a rendered artifact stays cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}
