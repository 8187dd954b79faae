package feedlens

import (
	"context"

	healthuc "github.com/kailas-cloud/feedlens/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status  string            // "ok", "degraded", "error"
	Records int               // number of searchable records
	Checks  map[string]string // component → "ok"/"error"
}

// Health checks the record set and, when configured, Valkey/Redis.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:  string(report.Status),
		Records: report.Records,
		Checks:  checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
