package querycache

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cardex/internal/db"
)

// store is the consumer interface for the shared cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Store caches serialized pages in the database with SET EX.
// Errors are logged and reported as a miss; a broken cache never fails a search.
type Store struct {
	store  store
	hits   counter
	logger *zap.Logger
}

// NewStore creates a store-backed cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"/"error"), passed explicitly.
func NewStore(s store, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Store {
	return &Store{store: s, hits: counter{cacheTotal}, logger: logger}
}

// Get returns the cached value for key.
func (c *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.store.Get(ctx, hashKey(key))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			c.hits.inc("miss")
			return nil, false
		}
		c.hits.inc("error")
		c.logger.Warn("Failed to read query cache", zap.Error(err))
		return nil, false
	}
	if len(data) == 0 {
		c.hits.inc("miss")
		return nil, false
	}
	c.hits.inc("hit")
	return data, true
}

// Set stores value under key for ttl.
func (c *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := c.store.SetWithTTL(ctx, hashKey(key), value, ttl); err != nil {
		c.logger.Warn("Failed to write query cache", zap.Error(err))
	}
}
