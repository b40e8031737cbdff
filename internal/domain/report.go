package domain

import "time"

// Report is the aggregated outcome of one pass over every configured target.
// Results keep configuration order: exactly one entry per target, always.
type Report struct {
	Results      []CheckResult `json:"results"`
	HealthyCount int           `json:"healthy_count"`
	TotalCount   int           `json:"total_count"`
	StartedAt    time.Time     `json:"started_at"`
}

// NewReport derives the aggregate counts from the per-target results.
func NewReport(startedAt time.Time, results []CheckResult) Report {
	rep := Report{
		Results:    results,
		TotalCount: len(results),
		StartedAt:  startedAt,
	}
	for _, r := range results {
		if r.Healthy() {
			rep.HealthyCount++
		}
	}
	return rep
}

// Failures returns the non-healthy results, preserving order.
func (r Report) Failures() []CheckResult {
	var out []CheckResult
	for _, res := range r.Results {
		if !res.Healthy() {
			out = append(out, res)
		}
	}
	return out
}

func (r Report) AllHealthy() bool {
	return r.HealthyCount == r.TotalCount
}
