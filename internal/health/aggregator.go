package health

import (
	"context"
	"sync"
	"time"

	"github.com/hamed0406/healthagg/internal/domain"
	"github.com/hamed0406/healthagg/internal/probe"
)

// Aggregator runs one probe per configured target and assembles a Report.
//
// With Concurrency <= 1 the targets are checked strictly in order, one
// outbound request in flight at a time. With Concurrency > 1 a bounded pool
// runs the probes in parallel; each worker writes to its own slot so the
// Report keeps configuration order and the aggregates are unaffected by
// scheduling.
type Aggregator struct {
	Checker     probe.Checker
	Concurrency int
}

func New(checker probe.Checker, concurrency int) *Aggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{Checker: checker, Concurrency: concurrency}
}

// CheckOne probes a single target. All failure modes come back as data in
// the CheckResult; this never returns an error and never panics the run.
func (a *Aggregator) CheckOne(ctx context.Context, t domain.Target) domain.CheckResult {
	out := a.Checker.Check(ctx, t.URL)
	return domain.CheckResult{
		Name:       t.Name,
		URL:        t.URL,
		Status:     out.Status,
		HTTPStatus: out.HTTPStatus,
		DurationMS: out.DurationMS,
		Error:      out.Error,
		CheckedAt:  time.Now().UTC(),
	}
}

// CheckAll probes every target exactly once. A failing or timing-out target
// never aborts the run; the Report always holds one result per target in
// configuration order.
func (a *Aggregator) CheckAll(ctx context.Context, targets []domain.Target) domain.Report {
	started := time.Now().UTC()
	results := make([]domain.CheckResult, len(targets))

	if a.Concurrency <= 1 || len(targets) <= 1 {
		for i, t := range targets {
			results[i] = a.CheckOne(ctx, t)
		}
		return domain.NewReport(started, results)
	}

	sem := make(chan struct{}, a.Concurrency)
	var wg sync.WaitGroup
	for i, t := range targets {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, t domain.Target) {
			defer wg.Done()
			defer func() { <-sem }()
			// distinct slot per target, no shared mutation
			results[i] = a.CheckOne(ctx, t)
		}(i, t)
	}
	wg.Wait()

	return domain.NewReport(started, results)
}
