package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cardex"

var registerOnce sync.Once

// Register registers every cardex collector on the default registry. Later calls are no-ops.
func Register() {
	registerOnce.Do(func() {
		MustRegisterTo(prometheus.DefaultRegisterer)
	})
}

// MustRegisterTo registers every cardex collector on reg. Panics on duplicate registration.
func MustRegisterTo(reg prometheus.Registerer) {
	reg.MustRegister(
		httpRequestDuration,
		httpRequestsTotal,
		httpInFlight,
		SearchRequestsTotal,
		SearchDuration,
		SearchDegradedTotal,
		SearchStrategyFailuresTotal,
		QueryCacheTotal,
	)
}
