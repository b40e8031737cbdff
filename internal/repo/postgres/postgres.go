package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hamed0406/healthagg/internal/domain"
	"github.com/hamed0406/healthagg/internal/repo"
)

var _ repo.ReportStore = (*Store)(nil)
var _ repo.AlertStore = (*Store)(nil)

type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	s := &Store{pool: pool, log: log}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS report_runs (
			id         BIGSERIAL PRIMARY KEY,
			started_at TIMESTAMPTZ NOT NULL,
			healthy    INT NOT NULL,
			total      INT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS report_results (
			run_id      BIGINT NOT NULL REFERENCES report_runs(id) ON DELETE CASCADE,
			pos         INT NOT NULL,
			name        TEXT NOT NULL,
			url         TEXT NOT NULL,
			status      TEXT NOT NULL,
			http_status INT NOT NULL,
			duration_ms BIGINT NOT NULL,
			error       TEXT NOT NULL DEFAULT '',
			checked_at  TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (run_id, pos)
		);
		CREATE TABLE IF NOT EXISTS alert_state (
			service      TEXT PRIMARY KEY,
			last_state   BOOLEAN NOT NULL,
			last_sent_at TIMESTAMPTZ
		);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// ---- ReportStore ----

func (s *Store) Append(ctx context.Context, rep *domain.Report) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var runID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO report_runs (started_at, healthy, total)
		 VALUES ($1, $2, $3) RETURNING id`,
		rep.StartedAt, rep.HealthyCount, rep.TotalCount,
	).Scan(&runID)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, r := range rep.Results {
		_, err = tx.Exec(ctx,
			`INSERT INTO report_results
			   (run_id, pos, name, url, status, http_status, duration_ms, error, checked_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			runID, i, r.Name, r.URL, string(r.Status), r.HTTPStatus, r.DurationMS, r.Error, r.CheckedAt,
		)
		if err != nil {
			return fmt.Errorf("insert result %q: %w", r.Name, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) Latest(ctx context.Context) (*domain.Report, error) {
	var runID int64
	var startedAt time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT id, started_at FROM report_runs ORDER BY id DESC LIMIT 1`,
	).Scan(&runID, &startedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest run: %w", err)
	}

	rep, err := s.loadRun(ctx, runID, startedAt)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *Store) History(ctx context.Context, limit int) ([]domain.Report, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, started_at FROM report_runs ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer rows.Close()

	type run struct {
		id      int64
		started time.Time
	}
	var runs []run
	for rows.Next() {
		var r run
		if err := rows.Scan(&r.id, &r.started); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Report, 0, len(runs))
	for _, r := range runs {
		rep, err := s.loadRun(ctx, r.id, r.started)
		if err != nil {
			return nil, err
		}
		out = append(out, *rep)
	}
	return out, nil
}

func (s *Store) loadRun(ctx context.Context, runID int64, startedAt time.Time) (*domain.Report, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name, url, status, http_status, duration_ms, error, checked_at
		   FROM report_results WHERE run_id = $1 ORDER BY pos`, runID)
	if err != nil {
		return nil, fmt.Errorf("select results: %w", err)
	}
	defer rows.Close()

	var results []domain.CheckResult
	for rows.Next() {
		var r domain.CheckResult
		var status string
		if err := rows.Scan(&r.Name, &r.URL, &status, &r.HTTPStatus, &r.DurationMS, &r.Error, &r.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Status = domain.Status(status)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rep := domain.NewReport(startedAt, results)
	return &rep, nil
}
