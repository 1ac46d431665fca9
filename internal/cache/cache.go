// Package cache provides the injectable in-memory cache used for the
// nearest-match memo. A cache is always owned and invalidated explicitly by
// the component that needs it, never shared process-wide.
package cache

import (
	"context"
	"time"
)

// Manager is the minimal cache contract the engine components depend on.
type Manager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K)
	Flush(ctx context.Context)
}
