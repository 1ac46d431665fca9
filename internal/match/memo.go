package match

import (
	"context"
	"sync"
	"time"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/cache"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/color"
)

// DefaultMemoTTL bounds how long a memoized nearest match survives. Live
// sampling repeats targets often enough that even a short TTL absorbs most
// of the scans.
const DefaultMemoTTL = 10 * time.Minute

// Memo wraps an Index with a read-through cache keyed by the target's
// normalized hex. The cache manager is injected so callers control its
// backing and lifetime; Rebuild flushes it when the pool changes.
type Memo struct {
	mu      sync.RWMutex
	idx     *Index
	lookups *cache.ReadThrough[string, Match, color.Color]
	ttl     time.Duration
}

// NewMemo creates a memoizing wrapper over the pool using the given cache
// manager. Pass a fresh manager per Memo; it is flushed on Rebuild.
func NewMemo(pool []catalog.Entry, mgr cache.Manager[string, Match], ttl time.Duration) *Memo {
	m := &Memo{
		idx: NewIndex(pool),
		ttl: ttl,
	}
	m.lookups = cache.NewReadThrough[string, Match, color.Color](mgr, m.scan, false)
	return m
}

// scan is the cache-miss path.
func (m *Memo) scan(ctx context.Context, target color.Color) (Match, error) {
	m.mu.RLock()
	idx := m.idx
	m.mu.RUnlock()

	match, ok := idx.Nearest(target)
	if !ok {
		return Match{}, ErrEmptyPool
	}
	return match, nil
}

// Nearest returns the closest entry to target, consulting the memo first.
func (m *Memo) Nearest(ctx context.Context, target color.Color) (Match, bool) {
	match, err := m.lookups.Get(ctx, target.Hex(), target, m.ttl)
	if err != nil {
		return Match{}, false
	}
	return match, true
}

// Rebuild replaces the candidate pool and flushes every memoized result.
func (m *Memo) Rebuild(ctx context.Context, pool []catalog.Entry) {
	idx := NewIndex(pool)

	m.mu.Lock()
	m.idx = idx
	m.mu.Unlock()

	m.lookups.Invalidate(ctx)
}
