// Package cache stores rendered chart artifacts.
//
// A [Cache] is a byte store with per-entry TTL. Three backends exist:
// [FileCache] for the CLI, [RedisCache] for the server and [NullCache] when
// caching is disabled. Keys come from a [Keyer], so the pipeline never
// builds key strings itself and the server can namespace keys with
// [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with expiry. A miss is reported by hit == false,
// not by an error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 24 * time.Hour
