package querycache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultSize is the in-process cache capacity when none is configured.
const DefaultSize = 1024

type entry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process LRU cache. maxTTL bounds every entry; Set may shorten it.
type Memory struct {
	lru  *expirable.LRU[string, entry]
	hits counter
	now  func() time.Time
}

// NewMemory creates an in-process cache holding up to size entries for at most maxTTL.
func NewMemory(size int, maxTTL time.Duration, cacheTotal *prometheus.CounterVec) *Memory {
	if size <= 0 {
		size = DefaultSize
	}
	return &Memory{
		lru:  expirable.NewLRU[string, entry](size, nil, maxTTL),
		hits: counter{cacheTotal},
		now:  time.Now,
	}
}

// Get returns the cached value for key.
func (c *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		c.hits.inc("miss")
		return nil, false
	}
	if !c.now().Before(e.expires) {
		c.lru.Remove(key)
		c.hits.inc("miss")
		return nil, false
	}
	c.hits.inc("hit")
	return e.value, true
}

// Set stores a copy of value under key for ttl.
func (c *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.lru.Add(key, entry{
		value:   append([]byte(nil), value...),
		expires: c.now().Add(ttl),
	})
}

// Len returns the number of live entries.
func (c *Memory) Len() int {
	return c.lru.Len()
}
