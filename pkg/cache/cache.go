// Package cache stores rendered artifacts keyed by their inputs.
//
// A barbell render is a pure function of the plate calculation inputs and
// the render options, so identical requests can be served from disk. The
// CLI uses [FileCache]; tests and --no-cache use [NullCache].
//
// Keys come from a [Keyer]: a layout key hashes the calculation inputs, and
// an artifact key hashes a layout key together with style, format and
// scale.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// NullCache never stores anything: every render is a miss and runs the
// full pipeline. It backs --no-cache and runners created without a cache.
type NullCache struct{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)       { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
