package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/hamed0406/healthagg/internal/domain"
)

type Config struct {
	Addr         string // API bind address
	LogDir       string // logs directory
	DatabaseURL  string // postgres DSN; empty means in-memory store
	SlackWebhook string

	Targets             []domain.Target // ordered, validated at startup
	HTTPTimeout         time.Duration   // per-check timeout
	CheckInterval       time.Duration   // scheduler tick; 0 disables the loop
	MaxConcurrentChecks int

	PublicAPIKeys []string
	AdminAPIKeys  []string
	PublicRPM     int
	PublicBurst   int
	AdminRPM      int
	AdminBurst    int

	AlertCooldown   time.Duration
	AlertOnRecovery bool
}

// defaultTargets covers the platform's own services for local runs; any real
// deployment sets SERVICES.
var defaultTargets = []domain.Target{
	{Name: "gateway", URL: "http://localhost:8000/health"},
	{Name: "auth", URL: "http://localhost:8001/health"},
	{Name: "users", URL: "http://localhost:8002/health"},
	{Name: "quizzes", URL: "http://localhost:8003/health"},
	{Name: "media", URL: "http://localhost:8004/health"},
	{Name: "scores", URL: "http://localhost:8005/health"},
}

// FromEnv loads configuration once at startup. A malformed SERVICES value is
// the one fatal fault: silently skipping a bad target would undercount the
// report, so we fail here before any check runs.
func FromEnv() (Config, error) {
	targets := defaultTargets
	if raw := os.Getenv("SERVICES"); raw != "" {
		parsed, err := ParseServices(raw)
		if err != nil {
			return Config{}, fmt.Errorf("SERVICES: %w", err)
		}
		targets = parsed
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	return Config{
		Addr:         addr,
		LogDir:       logDir,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SlackWebhook: os.Getenv("SLACK_WEBHOOK"),

		Targets:             targets,
		HTTPTimeout:         envMS("HTTP_TIMEOUT_MS", 10_000),
		CheckInterval:       envMS("CHECK_INTERVAL_MS", 0),
		MaxConcurrentChecks: envInt("MAX_CONCURRENT_CHECKS", 1),

		PublicAPIKeys: splitKeys(os.Getenv("PUBLIC_API_KEYS")),
		AdminAPIKeys:  splitKeys(os.Getenv("ADMIN_API_KEYS")),
		PublicRPM:     envInt("PUBLIC_RPM", 120),
		PublicBurst:   envInt("PUBLIC_BURST", 60),
		AdminRPM:      envInt("ADMIN_RPM", 60),
		AdminBurst:    envInt("ADMIN_BURST", 30),

		AlertCooldown:   envMS("ALERT_COOLDOWN_MS", 15*60*1000),
		AlertOnRecovery: os.Getenv("ALERT_ON_RECOVERY") != "0",
	}, nil
}

// ParseServices parses an ordered "name=url,name=url" list. Every entry is
// validated; problems are collected so the operator sees them all at once.
func ParseServices(raw string) ([]domain.Target, error) {
	var errs error
	seen := make(map[string]bool)
	var out []domain.Target

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, rawURL, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		rawURL = strings.TrimSpace(rawURL)
		if !ok || name == "" || rawURL == "" {
			errs = multierr.Append(errs, fmt.Errorf("entry %q: want name=url", entry))
			continue
		}
		if seen[name] {
			errs = multierr.Append(errs, fmt.Errorf("service %q: duplicate name", name))
			continue
		}

		u, err := url.Parse(rawURL)
		switch {
		case err != nil:
			errs = multierr.Append(errs, fmt.Errorf("service %q: %w", name, err))
		case u.Scheme != "http" && u.Scheme != "https":
			errs = multierr.Append(errs, fmt.Errorf("service %q: unsupported scheme %q", name, u.Scheme))
		case u.Host == "":
			errs = multierr.Append(errs, fmt.Errorf("service %q: missing host in %q", name, rawURL))
		default:
			seen[name] = true
			out = append(out, domain.Target{Name: name, URL: rawURL})
		}
	}

	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envMS(key string, defMS int64) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(defMS) * time.Millisecond
}

func splitKeys(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
