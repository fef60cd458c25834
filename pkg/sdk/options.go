package cardex

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// Share is one hybrid member: a strategy and the fraction of the merge depth it fills first.
type Share struct {
	Strategy Strategy
	Share    float64
}

type clientConfig struct {
	addrs    []string
	password string

	index     string
	keyPrefix string

	timeout  time.Duration
	hybrid   []Share
	cacheTTL time.Duration
	cacheCap int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// Default index layout, shared with the HTTP server.
const (
	DefaultIndex     = "cardex:cards:idx"
	DefaultKeyPrefix = "cardex:card:"
)

// WithRedis sets the Redis addresses. At least one is required.
func WithRedis(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = append([]string(nil), addrs...)
	})
}

// WithPassword sets the Redis password.
func WithPassword(password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.password = password
	})
}

// WithIndex overrides the FT index name and the card key prefix.
func WithIndex(name, keyPrefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.index = name
		c.keyPrefix = keyPrefix
	})
}

// WithTimeout bounds the retrieval fan-out of one search. Default: 2s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithHybrid sets the strategies a hybrid search merges, in merge order.
// Default: frequency 0.6, probabilistic 0.4.
func WithHybrid(shares ...Share) Option {
	return optionFunc(func(c *clientConfig) {
		c.hybrid = append([]Share(nil), shares...)
	})
}

// WithCache enables an in-process page cache holding up to size pages for ttl.
func WithCache(ttl time.Duration, size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
		c.cacheCap = size
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
