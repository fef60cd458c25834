// Package querycache holds the cache collaborators injected into the search engine.
package querycache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/prometheus/client_golang/prometheus"
)

// KeyPrefix namespaces cached pages in a shared store.
const KeyPrefix = "cardex:qcache:"

func hashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return KeyPrefix + hex.EncodeToString(h[:])
}

type counter struct {
	total *prometheus.CounterVec
}

func (c counter) inc(result string) {
	if c.total != nil {
		c.total.WithLabelValues(result).Inc()
	}
}
