package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/healthagg/internal/domain"
)

func report(healthy bool, at time.Time) domain.Report {
	status := domain.StatusOK
	code := 200
	if !healthy {
		status = domain.StatusHTTPError
		code = 503
	}
	return domain.NewReport(at, []domain.CheckResult{
		{Name: "auth", Status: status, HTTPStatus: code},
	})
}

func TestStore_LatestEmpty(t *testing.T) {
	s := New()
	rep, err := s.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rep)
}

func TestStore_AppendAndLatest(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := report(true, time.Now().UTC().Add(-time.Minute))
	second := report(false, time.Now().UTC())
	require.NoError(t, s.Append(ctx, &first))
	require.NoError(t, s.Append(ctx, &second))

	got, err := s.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0, got.HealthyCount)
}

func TestStore_HistoryNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()

	times := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	for _, at := range times {
		rep := report(true, at)
		require.NoError(t, s.Append(ctx, &rep))
	}

	got, err := s.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, times[2], got[0].StartedAt)
	assert.Equal(t, times[1], got[1].StartedAt)
}

func TestStore_HistoryBounded(t *testing.T) {
	s := New()
	ctx := context.Background()
	for i := 0; i < maxReports+10; i++ {
		rep := report(true, time.Now().UTC())
		require.NoError(t, s.Append(ctx, &rep))
	}
	got, err := s.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, maxReports)
}

func TestStore_AlertRecords(t *testing.T) {
	s := New()
	ctx := context.Background()

	rec, err := s.Get(ctx, "auth")
	require.NoError(t, err)
	assert.Nil(t, rec)

	sent := time.Now().UTC()
	require.NoError(t, s.Set(ctx, "auth", false, sent))

	rec, err = s.Get(ctx, "auth")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.False(t, rec.LastState)
	require.NotNil(t, rec.LastSentAt)
	assert.Equal(t, sent, *rec.LastSentAt)

	// state flip without a send keeps the old send time
	require.NoError(t, s.Set(ctx, "auth", true, time.Time{}))
	rec, err = s.Get(ctx, "auth")
	require.NoError(t, err)
	assert.True(t, rec.LastState)
	require.NotNil(t, rec.LastSentAt)
	assert.Equal(t, sent, *rec.LastSentAt)
}
