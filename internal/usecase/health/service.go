package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates search still works but an auxiliary component failed.
	Degraded Status = "degraded"
	// Unhealthy indicates search cannot return results.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	CheckRecords   = "records"
	CheckStorage   = "storage"
	CheckEmbedding = "embedding"
)

// Report aggregates health check results.
type Report struct {
	Status  Status
	Records int
	Checks  map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	records   RecordCounter
	storage   StoragePinger
	embedding EmbeddingChecker
}

// New creates a Service. storage is nil for the in-memory driver,
// embedding is nil when the similarity signal does not call a provider.
func New(records RecordCounter, storage StoragePinger, embedding EmbeddingChecker) *Service {
	return &Service{records: records, storage: storage, embedding: embedding}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	n := s.records.Len()
	if n == 0 {
		checks[CheckRecords] = CheckError
	} else {
		checks[CheckRecords] = CheckOK
	}

	if s.storage != nil {
		checks[CheckStorage] = result(s.storage.Ping(ctx))
	}
	if s.embedding != nil {
		checks[CheckEmbedding] = result(s.embedding.HealthCheck(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks[CheckRecords] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Records: n, Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
