package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemory_SetThenGet(t *testing.T) {
	c := NewInMemory[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	c.Set(context.Background(), "crimson", "#DC143C", DefaultExpiration)

	got, ok := c.Get(context.Background(), "crimson")
	require.True(t, ok)
	require.Equal(t, "#DC143C", got)
}

func TestInMemory_GetMissing(t *testing.T) {
	c := NewInMemory[string, string]("test", DefaultExpiration, DefaultCleanupInterval)

	got, ok := c.Get(context.Background(), "nope")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemory_GetWrongValueType(t *testing.T) {
	c := NewInMemory[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	c.cache.Set("key", 123, DefaultExpiration)

	got, ok := c.Get(context.Background(), "key")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemory_Delete(t *testing.T) {
	c := NewInMemory[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	c.Set(context.Background(), "a", 1, DefaultExpiration)
	c.Set(context.Background(), "b", 2, DefaultExpiration)

	c.Delete(context.Background(), "a")

	_, ok := c.Get(context.Background(), "a")
	require.False(t, ok)
	_, ok = c.Get(context.Background(), "b")
	require.True(t, ok)
}

func TestInMemory_Flush(t *testing.T) {
	c := NewInMemory[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	c.Set(context.Background(), "a", 1, DefaultExpiration)
	c.Flush(context.Background())

	_, ok := c.Get(context.Background(), "a")
	require.False(t, ok)
}

func TestInMemory_TTLExpiry(t *testing.T) {
	c := NewInMemory[string, int]("test", 10*time.Millisecond, time.Minute)
	c.Set(context.Background(), "a", 1, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := c.Get(context.Background(), "a")
		return !ok
	}, time.Second, 5*time.Millisecond)
}
