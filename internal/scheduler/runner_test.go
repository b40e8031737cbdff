package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/healthagg/internal/domain"
	"github.com/hamed0406/healthagg/internal/health"
	"github.com/hamed0406/healthagg/internal/probe"
	"github.com/hamed0406/healthagg/internal/repo"
)

// --- fakes ---

var _ repo.ReportStore = (*fakeReports)(nil)

type fakeReports struct {
	mu   sync.Mutex
	n    int
	last *domain.Report
}

func (f *fakeReports) Append(ctx context.Context, rep *domain.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	cp := *rep
	f.last = &cp
	return nil
}

func (f *fakeReports) Latest(ctx context.Context) (*domain.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, nil
}

func (f *fakeReports) History(ctx context.Context, limit int) ([]domain.Report, error) {
	return nil, nil
}

type alwaysOK struct{}

func (a *alwaysOK) Check(ctx context.Context, url string) probe.Outcome {
	return probe.Outcome{Status: domain.StatusOK, HTTPStatus: 200, DurationMS: 1}
}

var testTargets = []domain.Target{
	{Name: "auth", URL: "https://auth.example.com/health"},
	{Name: "quizzes", URL: "https://quiz.example.com/health"},
}

// --- tests ---

func TestRunner_RunOnceAppendsReport(t *testing.T) {
	store := &fakeReports{}
	r := NewRunner(zap.NewNop(), health.New(&alwaysOK{}, 1), testTargets, store, time.Minute)

	rep := r.RunOnce(context.Background())
	if rep == nil || rep.TotalCount != 2 || rep.HealthyCount != 2 {
		t.Fatalf("unexpected report: %+v", rep)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.n != 1 || store.last == nil {
		t.Fatalf("expected one Append, got n=%d", store.n)
	}
	if store.last.Results[0].Name != "auth" {
		t.Fatalf("order lost: %+v", store.last.Results)
	}
}

func TestRunner_LoopDoesImmediatePass(t *testing.T) {
	store := &fakeReports{}
	r := NewRunner(zap.NewNop(), health.New(&alwaysOK{}, 1), testTargets, store, 2*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	time.Sleep(15 * time.Millisecond)

	store.mu.Lock()
	n := store.n
	store.mu.Unlock()
	if n == 0 {
		t.Fatalf("expected at least one pass from the loop")
	}
}

func TestRunner_ZeroIntervalDisablesLoop(t *testing.T) {
	store := &fakeReports{}
	r := NewRunner(zap.NewNop(), health.New(&alwaysOK{}, 1), testTargets, store, 0)

	done := make(chan struct{})
	go func() {
		r.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("disabled runner should return immediately")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.n != 0 {
		t.Fatalf("disabled runner must not run passes, got %d", store.n)
	}
}
