package health

import (
	"fmt"
	"strings"

	"github.com/hamed0406/healthagg/internal/domain"
)

// FormatReport renders a Report for the console: one line per target, a
// healthy/total summary, then a bulleted failures section when anything is
// down.
func FormatReport(rep domain.Report) string {
	width := 0
	for _, r := range rep.Results {
		if len(r.Name) > width {
			width = len(r.Name)
		}
	}

	var b strings.Builder
	for _, r := range rep.Results {
		glyph := "✔"
		if !r.Healthy() {
			glyph = "✖"
		}
		fmt.Fprintf(&b, "%s %-*s %s (%d ms)\n", glyph, width, r.Name, statusText(r), r.DurationMS)
	}

	fmt.Fprintf(&b, "\n%d/%d healthy\n", rep.HealthyCount, rep.TotalCount)

	if fails := rep.Failures(); len(fails) > 0 {
		b.WriteString("\nfailures:\n")
		for _, f := range fails {
			fmt.Fprintf(&b, "  - %s: %s\n", f.Name, failureText(f))
		}
	}
	return b.String()
}

func statusText(r domain.CheckResult) string {
	switch r.Status {
	case domain.StatusOK:
		return "200 OK"
	case domain.StatusHTTPError:
		return fmt.Sprintf("HTTP %d", r.HTTPStatus)
	case domain.StatusTimeout:
		return "timeout"
	default:
		return "network error"
	}
}

func failureText(f domain.CheckResult) string {
	if f.Error != "" {
		return f.Error
	}
	return statusText(f)
}
