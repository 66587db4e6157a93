package dto

import "sort"

// Health statuses reported by the health endpoints.
const (
	HealthOK       = "ok"
	HealthReady    = "ready"
	HealthNotReady = "not_ready"
	HealthFailing  = "failing"
)

// LivenessResponse is the body of GET /health/live.
type LivenessResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse is the body of GET /health/ready. Failing lists the names
// of unhealthy dependencies in sorted order so callers can diff responses.
type ReadinessResponse struct {
	Status  string                 `json:"status"`
	Checks  map[string]CheckResult `json:"checks"`
	Failing []string               `json:"failing,omitempty"`
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Ready reports whether every check passed.
func (r ReadinessResponse) Ready() bool {
	return r.Status == HealthReady
}

// ToReadinessResponse converts registry results, where a nil error means
// healthy.
func ToReadinessResponse(results map[string]error) ReadinessResponse {
	resp := ReadinessResponse{
		Status: HealthReady,
		Checks: make(map[string]CheckResult, len(results)),
	}

	for name, err := range results {
		if err == nil {
			resp.Checks[name] = CheckResult{Status: HealthOK}
			continue
		}
		resp.Checks[name] = CheckResult{Status: HealthFailing, Error: err.Error()}
		resp.Failing = append(resp.Failing, name)
	}

	if len(resp.Failing) > 0 {
		resp.Status = HealthNotReady
		sort.Strings(resp.Failing)
	}
	return resp
}
