package cardex

import (
	"context"

	healthuc "github.com/kailas-cloud/cardex/internal/usecase/health"
)

// Health statuses reported by Client.Health.
const (
	HealthOK       = string(healthuc.Healthy)
	HealthDegraded = string(healthuc.Degraded)
	HealthError    = string(healthuc.Unhealthy)
)

// HealthStatus is the aggregated state of the store and the card index.
type HealthStatus struct {
	Status string
	Checks map[string]string // "database", "index" → "ok" | "missing" | "error"
}

// Searchable reports whether full searches can run. A degraded client still
// answers through the basic fallback.
func (h HealthStatus) Searchable() bool { return h.Status == HealthOK }

// Health pings the store and looks up the card index.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	if report.Status != healthuc.Healthy {
		c.obs.unhealthy(ctx, string(report.Status), checks)
	}
	return HealthStatus{Status: string(report.Status), Checks: checks}
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
