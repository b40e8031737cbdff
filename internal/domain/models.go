package domain

import "time"

// Target is one named service endpoint to probe.
type Target struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Status classifies the outcome of a single probe.
type Status string

const (
	StatusOK           Status = "ok"            // HTTP 200
	StatusHTTPError    Status = "http_error"    // reachable, non-200
	StatusNetworkError Status = "network_error" // DNS, connect, TLS or reset failure
	StatusTimeout      Status = "timeout"       // no response within the deadline
)

type CheckResult struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Status     Status    `json:"status"`
	HTTPStatus int       `json:"http_status,omitempty"` // 0 when no response arrived
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

// Healthy reports whether the probe saw a 200 response.
func (r CheckResult) Healthy() bool {
	return r.Status == StatusOK
}
