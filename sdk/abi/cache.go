package abi

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/atomic"

	"github.com/moveup-labs/moveup-go-sdk/model/moveup"
	"github.com/moveup-labs/moveup-go-sdk/model/rest"
)

const (
	DefaultCacheTTL  = 10 * time.Minute
	DefaultCacheSize = 256
)

// ModuleFunctions maps "0x1::module::function" to the entry functions published by an account.
type ModuleFunctions map[string]rest.MoveFunction

type cachedFunctions struct {
	functions ModuleFunctions
	fetchedAt time.Time
}

// Cache holds the entry functions of recently queried accounts. An entry older than the
// TTL is dropped when it is read.
type Cache struct {
	cache  *lru.Cache[moveup.AccountAddress, cachedFunctions]
	ttl    time.Duration
	clock  func() time.Time
	hits   *atomic.Uint64
	misses *atomic.Uint64
}

// NewCache creates a Cache holding at most size accounts.
func NewCache(size int, ttl time.Duration, clock func() time.Time) (*Cache, error) {
	cache, err := lru.New[moveup.AccountAddress, cachedFunctions](size)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = time.Now
	}
	return &Cache{
		cache:  cache,
		ttl:    ttl,
		clock:  clock,
		hits:   atomic.NewUint64(0),
		misses: atomic.NewUint64(0),
	}, nil
}

// Get returns the functions cached for addr, unless they are missing or expired.
func (c *Cache) Get(addr moveup.AccountAddress) (ModuleFunctions, bool) {
	entry, ok := c.cache.Get(addr)
	if ok && c.clock().Sub(entry.fetchedAt) >= c.ttl {
		c.cache.Remove(addr)
		ok = false
	}
	if !ok {
		c.misses.Inc()
		return nil, false
	}
	c.hits.Inc()
	return entry.functions, true
}

// Add stores the functions of addr, stamped with the current time.
func (c *Cache) Add(addr moveup.AccountAddress, functions ModuleFunctions) (evicted bool) {
	return c.cache.Add(addr, cachedFunctions{functions: functions, fetchedAt: c.clock()})
}

// Remove drops the entry of addr. It reports whether an entry was present.
func (c *Cache) Remove(addr moveup.AccountAddress) (present bool) {
	return c.cache.Remove(addr)
}

func (c *Cache) Len() int {
	return c.cache.Len()
}

// Stats returns the number of hits and misses since the cache was created.
func (c *Cache) Stats() (hits uint64, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
