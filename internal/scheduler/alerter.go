package scheduler

import (
	"context"
	"time"

	"github.com/hamed0406/healthagg/internal/notify"
	"github.com/hamed0406/healthagg/internal/repo"
)

// AlerterConfig tunes escalation policy. The aggregator itself only reports;
// deciding when a human hears about it lives here.
type AlerterConfig struct {
	AlertOnRecovery bool
	Cooldown        time.Duration
	PollInterval    time.Duration
}

type Alerter struct {
	reports  repo.ReportStore
	alertDB  repo.AlertStore
	notifier notify.Notifier
	cfg      AlerterConfig
}

func NewAlerter(
	reports repo.ReportStore,
	alertDB repo.AlertStore,
	notifier notify.Notifier,
	cfg AlerterConfig,
) *Alerter {
	return &Alerter{
		reports:  reports,
		alertDB:  alertDB,
		notifier: notifier,
		cfg:      cfg,
	}
}

func (a *Alerter) Run(ctx context.Context) error {
	t := time.NewTicker(a.cfg.PollInterval)
	defer t.Stop()

	// initial pass
	_ = a.ScanOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			_ = a.ScanOnce(ctx)
		}
	}
}

func (a *Alerter) ScanOnce(ctx context.Context) error {
	rep, err := a.reports.Latest(ctx)
	if err != nil {
		return err
	}
	if rep == nil {
		return nil
	}

	now := time.Now()

	for _, r := range rep.Results {
		rec, _ := a.alertDB.Get(ctx, r.Name)

		healthy := r.Healthy()
		firstSeen := rec == nil
		stateChanged := firstSeen || rec.LastState != healthy

		// Cooldown only matters for DOWN alerts (suppresses noisy repeats).
		cooled := true
		if rec != nil && rec.LastSentAt != nil {
			cooled = now.Sub(*rec.LastSentAt) >= a.cfg.Cooldown
		}

		downAlert := stateChanged && !healthy && cooled
		// a service first seen healthy never "recovered"; recovery bypasses cooldown
		recoveryAlert := !firstSeen && stateChanged && healthy && a.cfg.AlertOnRecovery

		if downAlert || recoveryAlert {
			_ = a.notifier.Notify(ctx, notify.Event{
				Service: r.Name,
				URL:     r.URL,
				Down:    !healthy,
				Result:  r,
				At:      now,
			})
			_ = a.alertDB.Set(ctx, r.Name, healthy, now)
			continue
		}

		// State changed but nothing sent (cooldown, or recovery alerts off):
		// still record the new state without a send time.
		if stateChanged {
			_ = a.alertDB.Set(ctx, r.Name, healthy, time.Time{})
		}
	}

	return nil
}
