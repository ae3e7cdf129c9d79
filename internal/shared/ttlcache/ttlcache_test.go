package ttlcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_FreshWithinTTL(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }
	slot := NewSlot[string](time.Hour).WithClock(clock)

	_, ok := slot.Get()
	require.False(t, ok)

	slot.Put("featured")

	now = now.Add(time.Hour - time.Second)
	got, ok := slot.Get()
	require.True(t, ok)
	assert.Equal(t, "featured", got)

	now = now.Add(2 * time.Second)
	_, ok = slot.Get()
	assert.False(t, ok)
}

func TestSlot_Invalidate(t *testing.T) {
	slot := NewSlot[int](time.Hour)
	slot.Put(42)
	slot.Invalidate()
	_, ok := slot.Get()
	assert.False(t, ok)
}

func TestKeyed_PerKeyExpiry(t *testing.T) {
	now := time.Unix(2000, 0)
	clock := func() time.Time { return now }
	cache := NewKeyed[int, string](time.Hour).WithClock(clock)

	cache.Put(10, "A")
	now = now.Add(30 * time.Minute)
	cache.Put(20, "B")

	got, ok := cache.Get(10)
	require.True(t, ok)
	assert.Equal(t, "A", got)

	// 10 crosses its TTL, 20 is still fresh.
	now = now.Add(31 * time.Minute)
	_, ok = cache.Get(10)
	assert.False(t, ok)
	got, ok = cache.Get(20)
	require.True(t, ok)
	assert.Equal(t, "B", got)
}

func TestKeyed_StaleEntryRemovedOnRead(t *testing.T) {
	now := time.Unix(3000, 0)
	clock := func() time.Time { return now }
	cache := NewKeyed[int, string](time.Minute).WithClock(clock)

	cache.Put(1, "x")
	require.Equal(t, 1, cache.Len())

	now = now.Add(2 * time.Minute)
	_, ok := cache.Get(1)
	require.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}
