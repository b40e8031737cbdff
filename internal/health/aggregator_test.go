package health

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/healthagg/internal/domain"
	"github.com/hamed0406/healthagg/internal/probe"
)

// fakeChecker maps URL -> canned outcome.
type fakeChecker struct {
	mu       sync.Mutex
	outcomes map[string]probe.Outcome
	calls    []string
}

func (f *fakeChecker) Check(ctx context.Context, url string) probe.Outcome {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	if out, ok := f.outcomes[url]; ok {
		return out
	}
	return probe.Outcome{Status: domain.StatusNetworkError, Error: "no route"}
}

func threeTargets() []domain.Target {
	return []domain.Target{
		{Name: "A", URL: "http://x/health"},
		{Name: "B", URL: "http://y/health"},
		{Name: "C", URL: "http://z/health"},
	}
}

func mixedChecker() *fakeChecker {
	return &fakeChecker{outcomes: map[string]probe.Outcome{
		"http://x/health": {Status: domain.StatusOK, HTTPStatus: 200, DurationMS: 5},
		"http://y/health": {Status: domain.StatusNetworkError, Error: "connection refused", DurationMS: 1},
		"http://z/health": {Status: domain.StatusTimeout, Error: "context deadline exceeded", DurationMS: 10000},
	}}
}

func TestCheckAll_OneResultPerTargetInOrder(t *testing.T) {
	agg := New(mixedChecker(), 1)
	rep := agg.CheckAll(context.Background(), threeTargets())

	require.Len(t, rep.Results, 3)
	assert.Equal(t, "A", rep.Results[0].Name)
	assert.Equal(t, "B", rep.Results[1].Name)
	assert.Equal(t, "C", rep.Results[2].Name)

	assert.Equal(t, domain.StatusOK, rep.Results[0].Status)
	assert.Equal(t, 200, rep.Results[0].HTTPStatus)
	assert.Equal(t, domain.StatusNetworkError, rep.Results[1].Status)
	assert.NotEmpty(t, rep.Results[1].Error)
	assert.Equal(t, domain.StatusTimeout, rep.Results[2].Status)

	assert.Equal(t, 1, rep.HealthyCount)
	assert.Equal(t, 3, rep.TotalCount)

	fails := rep.Failures()
	require.Len(t, fails, 2)
	assert.Equal(t, "B", fails[0].Name)
	assert.Equal(t, "C", fails[1].Name)
}

func TestCheckAll_HTTPErrorCountsUnhealthyButRunContinues(t *testing.T) {
	chk := &fakeChecker{outcomes: map[string]probe.Outcome{
		"http://x/health": {Status: domain.StatusHTTPError, HTTPStatus: 503, DurationMS: 3},
		"http://y/health": {Status: domain.StatusOK, HTTPStatus: 200, DurationMS: 2},
	}}
	agg := New(chk, 1)
	rep := agg.CheckAll(context.Background(), []domain.Target{
		{Name: "down", URL: "http://x/health"},
		{Name: "up", URL: "http://y/health"},
	})

	require.Len(t, rep.Results, 2)
	assert.Equal(t, 503, rep.Results[0].HTTPStatus)
	assert.False(t, rep.Results[0].Healthy())
	assert.True(t, rep.Results[1].Healthy())
	assert.Equal(t, 1, rep.HealthyCount)
}

func TestCheckAll_ConcurrentMatchesSequential(t *testing.T) {
	seq := New(mixedChecker(), 1).CheckAll(context.Background(), threeTargets())
	con := New(mixedChecker(), 8).CheckAll(context.Background(), threeTargets())

	require.Equal(t, len(seq.Results), len(con.Results))
	for i := range seq.Results {
		assert.Equal(t, seq.Results[i].Name, con.Results[i].Name)
		assert.Equal(t, seq.Results[i].Status, con.Results[i].Status)
	}
	assert.Equal(t, seq.HealthyCount, con.HealthyCount)
	assert.Equal(t, seq.TotalCount, con.TotalCount)
}

func TestCheckAll_Idempotent(t *testing.T) {
	chk := &fakeChecker{outcomes: map[string]probe.Outcome{
		"http://x/health": {Status: domain.StatusOK, HTTPStatus: 200, DurationMS: 5},
		"http://y/health": {Status: domain.StatusOK, HTTPStatus: 200, DurationMS: 7},
	}}
	targets := []domain.Target{
		{Name: "A", URL: "http://x/health"},
		{Name: "B", URL: "http://y/health"},
	}
	agg := New(chk, 1)

	first := agg.CheckAll(context.Background(), targets)
	second := agg.CheckAll(context.Background(), targets)

	assert.Equal(t, first.HealthyCount, second.HealthyCount)
	assert.Equal(t, first.TotalCount, second.TotalCount)
}

func TestCheckAll_EmptyTargets(t *testing.T) {
	agg := New(&fakeChecker{}, 4)
	rep := agg.CheckAll(context.Background(), nil)
	assert.Zero(t, rep.TotalCount)
	assert.Zero(t, rep.HealthyCount)
	assert.Empty(t, rep.Failures())
	assert.True(t, rep.AllHealthy())
}

func TestCheckOne_PopulatesTargetFields(t *testing.T) {
	agg := New(mixedChecker(), 1)
	res := agg.CheckOne(context.Background(), domain.Target{Name: "A", URL: "http://x/health"})

	assert.Equal(t, "A", res.Name)
	assert.Equal(t, "http://x/health", res.URL)
	assert.Equal(t, int64(5), res.DurationMS)
	assert.WithinDuration(t, time.Now().UTC(), res.CheckedAt, time.Minute)
}
