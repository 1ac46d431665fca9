package cache

import (
	"context"
	"time"
)

// ReadThrough wraps a Manager with a loader function: a miss invokes the
// loader and stores its result. skipCache turns the wrapper into a plain
// passthrough, which keeps tests deterministic.
type ReadThrough[K comparable, V any, I any] struct {
	cache     Manager[K, V]
	fn        func(ctx context.Context, input I) (V, error)
	skipCache bool
}

func NewReadThrough[K comparable, V any, I any](
	cache Manager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	skipCache bool,
) *ReadThrough[K, V, I] {
	return &ReadThrough[K, V, I]{
		cache:     cache,
		fn:        fn,
		skipCache: skipCache,
	}
}

// Get returns the cached value for key, or loads it via fn and caches the
// result for ttl. Loader errors are never cached.
func (r *ReadThrough[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.skipCache {
		return r.fn(ctx, input)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.fn(ctx, input)
	if err != nil {
		return value, err
	}

	r.cache.Set(ctx, key, value, ttl)

	return value, nil
}

// Invalidate flushes the underlying cache. Call it whenever the data the
// loader derives from has changed.
func (r *ReadThrough[K, V, I]) Invalidate(ctx context.Context) {
	r.cache.Flush(ctx)
}
