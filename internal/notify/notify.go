package notify

import (
	"context"
	"time"

	"github.com/hamed0406/healthagg/internal/domain"
)

// Event describes a service health transition worth telling a human about.
type Event struct {
	Service string
	URL     string
	Down    bool
	Result  domain.CheckResult
	At      time.Time
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev Event) error {
	var firstErr error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, ev); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
