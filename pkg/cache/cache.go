// Package cache stores simulation results between runs.
//
// Three backends implement [Cache]:
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps JSON entries under a directory, for the CLI
//   - [RedisCache] shares entries between server replicas
//
// Keys come from a [Keyer] so that every caller derives the same key for the
// same input, mode and comment marker:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ResultKey(cache.Hash(input), cache.ResultKeyOpts{Mode: "block"})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"errors"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// A miss is reported as hit == false with a nil error. Errors are reserved
// for backend failures; callers treat them as a miss.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// ErrNotClearable is returned by Clear for backends without bulk deletion.
var ErrNotClearable = errors.New("cache backend does not support clear")

// Clear removes every entry from c if the backend supports it.
func Clear(ctx context.Context, c Cache) error {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return ErrNotClearable
}

// Default TTLs for cached entries.
const (
	TTLResult = 7 * 24 * time.Hour
	TTLParse  = 24 * time.Hour
)
