package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/healthagg/internal/domain"
	"github.com/hamed0406/healthagg/internal/health"
	"github.com/hamed0406/healthagg/internal/probe"
	"github.com/hamed0406/healthagg/internal/repo"
)

// Runner periodically runs a full aggregator pass and stores the Report.
type Runner struct {
	Logger   *zap.Logger
	Agg      *health.Aggregator
	Targets  []domain.Target
	Store    repo.ReportStore
	Interval time.Duration
}

func NewRunner(
	logger *zap.Logger,
	agg *health.Aggregator,
	targets []domain.Target,
	store repo.ReportStore,
	interval time.Duration,
) *Runner {
	if interval < 0 {
		interval = 0
	}
	return &Runner{
		Logger:   logger,
		Agg:      agg,
		Targets:  targets,
		Store:    store,
		Interval: interval,
	}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	if r.Interval == 0 {
		// disabled
		r.Logger.Info("runner_disabled")
		return
	}
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	// immediate pass
	r.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("runner_stopped")
			return
		case <-t.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single pass and appends the Report. Also used by the
// API to serve on-demand checks.
func (r *Runner) RunOnce(ctx context.Context) *domain.Report {
	rep := r.Agg.CheckAll(ctx, r.Targets)

	if err := r.Store.Append(ctx, &rep); err != nil {
		r.Logger.Warn("runner_append_error", zap.Error(err))
	}

	for _, res := range rep.Results {
		if res.Status != domain.StatusNetworkError {
			continue
		}
		// annotate unreachable services with a DNS class so the operator can
		// tell "down" from "does not resolve"
		cls := probe.ClassifyDNS(ctx, res.URL)
		r.Logger.Info("network_error_diagnosis",
			zap.String("service", res.Name),
			zap.String("url", res.URL),
			zap.String("dns_class", string(cls)),
			zap.String("error", res.Error),
		)
	}

	r.Logger.Info("check_pass",
		zap.Int("healthy", rep.HealthyCount),
		zap.Int("total", rep.TotalCount),
		zap.Int("failures", len(rep.Failures())),
	)
	return &rep
}
