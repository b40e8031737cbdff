package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/healthagg/internal/domain"
	"github.com/hamed0406/healthagg/internal/httpapi/middleware"
	"github.com/hamed0406/healthagg/internal/repo"
	"github.com/hamed0406/healthagg/internal/scheduler"
)

// Server exposes the aggregator's reports as JSON so automation can consume
// them without re-parsing console text.
type Server struct {
	Logger  *zap.Logger
	Reports repo.ReportStore
	Runner  *scheduler.Runner
	Targets []domain.Target
	Keys    middleware.Keys

	PublicRPM   int
	PublicBurst int
	AdminRPM    int
	AdminBurst  int
}

func NewServer(l *zap.Logger, reports repo.ReportStore, runner *scheduler.Runner, targets []domain.Target) *Server {
	return &Server{Logger: l, Reports: reports, Runner: runner, Targets: targets}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAny(s.Keys))
		r.Use(middleware.RateLimit(s.PublicRPM, s.PublicBurst))
		r.Get("/api/targets", s.handleTargets)
		r.Get("/api/report", s.handleReport)
		r.Get("/api/history", s.handleHistory)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(s.Keys))
		r.Use(middleware.RateLimit(s.AdminRPM, s.AdminBurst))
		r.Post("/api/check", s.handleCheck)
	})

	return r
}

func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Targets)
}

// handleReport serves the most recent stored report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.Reports.Latest(r.Context())
	if err != nil {
		s.Logger.Warn("report_latest_error", zap.Error(err))
		http.Error(w, "report error", http.StatusInternalServerError)
		return
	}
	if rep == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no report yet"})
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	reps, err := s.Reports.History(r.Context(), limit)
	if err != nil {
		s.Logger.Warn("report_history_error", zap.Error(err))
		http.Error(w, "history error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reps)
}

// handleCheck runs a full pass synchronously and returns its report.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	rep := s.Runner.RunOnce(r.Context())
	s.Logger.Info("ondemand_check",
		zap.Int("healthy", rep.HealthyCount),
		zap.Int("total", rep.TotalCount),
	)
	writeJSON(w, http.StatusOK, rep)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
