// Package cache holds the short-lived response cache and the memo helper.
package cache

import (
	"context"
	"time"
)

const DefaultTTL = 5 * time.Minute

// Cache stores JSON-serializable values with a per-entry TTL. Concurrent
// writers to the same key resolve last-write-wins.
type Cache interface {
	// Get decodes the value at key into dest. found is false for missing or
	// expired entries.
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	// Set stores value under the cache's default TTL.
	Set(ctx context.Context, key string, value any) error
	SetTTL(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
