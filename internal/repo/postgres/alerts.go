package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hamed0406/healthagg/internal/repo"
)

// ---- AlertStore ----

func (s *Store) Get(ctx context.Context, service string) (*repo.AlertRecord, error) {
	var rec repo.AlertRecord
	err := s.pool.QueryRow(ctx,
		`SELECT service, last_state, last_sent_at FROM alert_state WHERE service = $1`,
		service,
	).Scan(&rec.Service, &rec.LastState, &rec.LastSentAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select alert state: %w", err)
	}
	return &rec, nil
}

func (s *Store) Set(ctx context.Context, service string, lastState bool, sentAt time.Time) error {
	var sent *time.Time
	if !sentAt.IsZero() {
		sent = &sentAt
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO alert_state (service, last_state, last_sent_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (service) DO UPDATE
		   SET last_state = EXCLUDED.last_state,
		       last_sent_at = COALESCE(EXCLUDED.last_sent_at, alert_state.last_sent_at)`,
		service, lastState, sent,
	)
	if err != nil {
		return fmt.Errorf("upsert alert state: %w", err)
	}
	return nil
}
