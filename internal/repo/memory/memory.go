package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hamed0406/healthagg/internal/domain"
	"github.com/hamed0406/healthagg/internal/repo"
)

// maxReports bounds the in-memory history so a long-running scheduler does
// not grow without limit.
const maxReports = 256

type Store struct {
	mu      sync.RWMutex
	reports []domain.Report
	alerts  map[string]*repo.AlertRecord
}

func New() *Store {
	return &Store{
		reports: make([]domain.Report, 0, 32),
		alerts:  make(map[string]*repo.AlertRecord),
	}
}

func (m *Store) Append(ctx context.Context, rep *domain.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, *rep)
	if len(m.reports) > maxReports {
		m.reports = m.reports[len(m.reports)-maxReports:]
	}
	return nil
}

func (m *Store) Latest(ctx context.Context) (*domain.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.reports) == 0 {
		return nil, nil
	}
	cp := m.reports[len(m.reports)-1]
	return &cp, nil
}

func (m *Store) History(ctx context.Context, limit int) ([]domain.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.reports) {
		limit = len(m.reports)
	}
	// newest first
	out := make([]domain.Report, 0, limit)
	for i := len(m.reports) - 1; i >= len(m.reports)-limit; i-- {
		out = append(out, m.reports[i])
	}
	return out, nil
}

func (m *Store) Get(ctx context.Context, service string) (*repo.AlertRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.alerts[service]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *Store) Set(ctx context.Context, service string, lastState bool, sentAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := &repo.AlertRecord{Service: service, LastState: lastState}
	if !sentAt.IsZero() {
		t := sentAt
		rec.LastSentAt = &t
	} else if old, ok := m.alerts[service]; ok {
		rec.LastSentAt = old.LastSentAt
	}
	m.alerts[service] = rec
	return nil
}
