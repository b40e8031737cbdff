package probe

import (
	"context"

	"github.com/hamed0406/healthagg/internal/domain"
)

// Outcome is the classified result of a single probe. Every failure mode is
// data; Check never returns a Go error.
//
// HTTPStatus is 0 when no response arrived (network error or timeout).
type Outcome struct {
	Status     domain.Status
	HTTPStatus int
	DurationMS int64
	Error      string
}

// Checker performs a single liveness probe against a URL.
type Checker interface {
	Check(ctx context.Context, url string) Outcome
}
