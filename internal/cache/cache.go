// Package cache is the short-lived result cache that shields the chain
// gateway from repeated identical queries. There is no background timer:
// expired entries are swept whenever the cache is read or written.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
)

const DefaultTTL = 30 * time.Second

// Key identifies one cached computation.
type Key struct {
	ChainID    uint64
	Operation  string
	ParamsHash string
}

// NewKey builds a key, hashing params (if any) into ParamsHash.
func NewKey(chainID uint64, operation string, params ...any) Key {
	return Key{
		ChainID:    chainID,
		Operation:  operation,
		ParamsHash: hashParams(params),
	}
}

func (k Key) String() string {
	if k.ParamsHash == "" {
		return fmt.Sprintf("%d:%s", k.ChainID, k.Operation)
	}
	return fmt.Sprintf("%d:%s:%s", k.ChainID, k.Operation, k.ParamsHash)
}

func hashParams(params []any) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprint(p)
	}
	return crypto.Keccak256Hash([]byte(strings.Join(parts, "|"))).Hex()[2:]
}

type entry struct {
	value     any
	expiresAt time.Time
}

type Option func(*Cache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// Cache is safe for concurrent use. Values are stored and replaced whole.
type Cache struct {
	mu         sync.Mutex
	entries    map[Key]entry
	defaultTTL time.Duration
	now        func() time.Time
}

func New(defaultTTL time.Duration, opts ...Option) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	c := &Cache{
		entries:    make(map[Key]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key. Expired entries are misses.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl, or the default TTL when ttl <= 0.
func (c *Cache) Set(key Key, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepLocked(now)
	c.entries[key] = entry{value: value, expiresAt: now.Add(ttl)}
}

// Sweep removes every expired entry and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sweepLocked(c.now())
}

func (c *Cache) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Get is the typed variant of (*Cache).Get. A value of another type is a miss.
func Get[T any](c *Cache, key Key) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
