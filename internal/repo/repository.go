package repo

import (
	"context"
	"time"

	"github.com/hamed0406/healthagg/internal/domain"
)

// Ports (interfaces) — swap in any DB adapter later.

// ReportStore persists the outcome of aggregator passes.
type ReportStore interface {
	Append(ctx context.Context, rep *domain.Report) error
	// Latest returns nil, nil when no report has been stored yet.
	Latest(ctx context.Context) (*domain.Report, error)
	History(ctx context.Context, limit int) ([]domain.Report, error)
}

// AlertRecord holds the last-known health of a service and the last time a
// notification was sent for it (used for cooldown).
type AlertRecord struct {
	Service    string
	LastState  bool
	LastSentAt *time.Time
}

// AlertStore keeps alert dedup state between alerter passes.
type AlertStore interface {
	// Get returns nil, nil if there's no record yet.
	Get(ctx context.Context, service string) (*AlertRecord, error)
	// Set upserts the record. A zero sentAt leaves LastSentAt untouched as nil.
	Set(ctx context.Context, service string, lastState bool, sentAt time.Time) error
}
