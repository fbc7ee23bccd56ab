package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache() (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	return New(30*time.Second, WithClock(clock.Now)), clock
}

func TestCache_GetSet(t *testing.T) {
	c, clock := newTestCache()
	key := NewKey(1, "capacity")

	_, ok := c.Get(key)
	assert.False(t, ok)

	c.Set(key, "v1", 0)
	v, ok := Get[string](c, key)
	require.True(t, ok)
	assert.Equal(t, "v1", v)

	clock.Advance(29 * time.Second)
	_, ok = c.Get(key)
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get(key)
	assert.False(t, ok, "entry must expire exactly at its ttl")
	assert.Zero(t, c.Len(), "expired entry must be swept on access")
}

func TestCache_SetOverwrites(t *testing.T) {
	c, clock := newTestCache()
	key := NewKey(1, "ratio")

	c.Set(key, 1, time.Minute)
	clock.Advance(50 * time.Second)
	c.Set(key, 2, 0)

	clock.Advance(20 * time.Second)
	v, ok := Get[int](c, key)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestCache_TypedGetMismatch(t *testing.T) {
	c, _ := newTestCache()
	key := NewKey(1, "capacity")
	c.Set(key, "string value", 0)

	_, ok := Get[int](c, key)
	assert.False(t, ok)
}

func TestCache_SweepOnSet(t *testing.T) {
	c, clock := newTestCache()
	for i := range 5 {
		c.Set(NewKey(uint64(i+1), "capacity"), i, 10*time.Second)
	}
	require.Equal(t, 5, c.Len())

	clock.Advance(11 * time.Second)
	c.Set(NewKey(99, "capacity"), 99, 0)
	assert.Equal(t, 1, c.Len())
}

func TestCache_Sweep(t *testing.T) {
	c, clock := newTestCache()
	c.Set(NewKey(1, "short"), 1, time.Second)
	c.Set(NewKey(1, "long"), 2, time.Hour)

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 0, c.Sweep())
}

func TestNewKey(t *testing.T) {
	plain := NewKey(1, "capacity")
	assert.Empty(t, plain.ParamsHash)
	assert.Equal(t, "1:capacity", plain.String())

	a := NewKey(1, "capacity", uint64(1717171717000))
	b := NewKey(1, "capacity", uint64(1717171717000))
	c := NewKey(1, "capacity", uint64(1717171718000))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	// full 32 byte keccak digest of the joined params
	assert.Len(t, a.ParamsHash, 64)
	assert.Equal(t, crypto.Keccak256Hash([]byte("1717171717000")).Hex()[2:], a.ParamsHash)
	assert.Equal(t, crypto.Keccak256Hash([]byte("2|1|3")).Hex()[2:], NewKey(1, "ratio", 2, 1, 3).ParamsHash)
	assert.NotEqual(t, NewKey(1, "capacity"), NewKey(10, "capacity"))
}

func TestCache_Concurrent(t *testing.T) {
	c := New(time.Minute)
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := NewKey(uint64(i%4), "op", i%8)
			for j := range 100 {
				c.Set(key, fmt.Sprintf("%d-%d", i, j), 0)
				_, _ = c.Get(key)
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 8)
}
