package cache

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrComputeCachesResult(t *testing.T) {
	store := NewStore[int]("test", time.Minute, 10, true)

	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := store.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = store.GetOrCompute("k", compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	assert.Equal(t, 1, calls, "second call must be served from cache")

	stats := store.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestGetOrComputeDoesNotCacheErrors(t *testing.T) {
	store := NewStore[int]("test", time.Minute, 10, true)

	calls := 0
	_, err := store.GetOrCompute("k", func() (int, error) {
		calls++
		return 0, errors.New("boom")
	})
	require.Error(t, err)

	v, err := store.GetOrCompute("k", func() (int, error) {
		calls++
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 2, calls, "failed compute must not be cached")
}

func TestTTLExpiry(t *testing.T) {
	store := NewStore[string]("test", 50*time.Millisecond, 10, true)

	current := time.Now()
	store.now = func() time.Time { return current }

	store.Set("k", "v")
	_, ok := store.Get("k")
	assert.True(t, ok)

	current = current.Add(51 * time.Millisecond)
	_, ok = store.Get("k")
	assert.False(t, ok, "entry past its TTL must expire")
	assert.Equal(t, int64(1), store.Stats().Expirations)
	assert.Equal(t, 0, store.Len())
}

func TestLRUEviction(t *testing.T) {
	store := NewStore[int]("test", time.Minute, 3, true)

	for i := 0; i < 3; i++ {
		store.Set(fmt.Sprintf("k%d", i), i)
	}
	// Touch k0 so k1 becomes the least recently used.
	_, ok := store.Get("k0")
	require.True(t, ok)

	store.Set("k3", 3)

	assert.Equal(t, 3, store.Len())
	_, ok = store.Get("k1")
	assert.False(t, ok, "least recently used entry must be evicted")
	_, ok = store.Get("k0")
	assert.True(t, ok)
	_, ok = store.Get("k3")
	assert.True(t, ok)
	assert.Equal(t, int64(1), store.Stats().Evictions)
}

func TestDisabledStoreBypassesCache(t *testing.T) {
	store := NewStore[int]("test", time.Minute, 10, false)

	calls := 0
	for i := 0; i < 2; i++ {
		v, err := store.GetOrCompute("k", func() (int, error) {
			calls++
			return calls, nil
		})
		require.NoError(t, err)
		assert.Equal(t, calls, v)
	}
	assert.Equal(t, 2, calls, "disabled store must recompute every time")
	assert.Equal(t, 0, store.Len())
}

func TestClearDropsEntriesKeepsCounters(t *testing.T) {
	store := NewStore[int]("test", time.Minute, 10, true)
	store.Set("a", 1)
	store.Set("b", 2)
	_, _ = store.Get("a")

	store.Clear()

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, int64(1), store.Stats().Hits)
}
