package probe

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/hamed0406/healthagg/internal/domain"
)

const DefaultTimeout = 10 * time.Second

// HTTPChecker probes a URL with one plain GET. A 200 is healthy; any other
// status is an HTTP error. Transport failures are split into timeout vs
// network error so reports can tell a slow service from an unreachable one.
type HTTPChecker struct {
	Client  *http.Client
	Timeout time.Duration
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPChecker{
		Client:  &http.Client{},
		Timeout: timeout,
	}
}

func (h *HTTPChecker) Check(ctx context.Context, target string) Outcome {
	start := time.Now()
	cctx, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, target, nil)
	if err != nil {
		return Outcome{
			Status:     domain.StatusNetworkError,
			DurationMS: elapsedMS(start),
			Error:      err.Error(),
		}
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		out := Outcome{DurationMS: elapsedMS(start), Error: err.Error()}
		if isTimeout(err) {
			out.Status = domain.StatusTimeout
		} else {
			out.Status = domain.StatusNetworkError
		}
		return out
	}

	// Drain the body so the connection goes back to the pool.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	out := Outcome{HTTPStatus: resp.StatusCode, DurationMS: elapsedMS(start)}
	if resp.StatusCode == http.StatusOK {
		out.Status = domain.StatusOK
	} else {
		out.Status = domain.StatusHTTPError
	}
	return out
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func elapsedMS(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
