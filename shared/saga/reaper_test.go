package saga

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSweeper struct {
	before []time.Time
	count  int64
	err    error
}

func (s *stubSweeper) FailStalePending(ctx context.Context, before time.Time) (int64, error) {
	s.before = append(s.before, before)
	return s.count, s.err
}

func TestReaper_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sweeper := &stubSweeper{count: 2}

	reaper := NewReaper(sweeper, 10*time.Minute, time.Minute, zap.NewNop())
	reaper.now = func() time.Time { return now }

	n, err := reaper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.Len(t, sweeper.before, 1)
	assert.Equal(t, now.Add(-10*time.Minute), sweeper.before[0])
}

func TestReaper_SweepError(t *testing.T) {
	reaper := NewReaper(&stubSweeper{err: errors.New("db down")}, time.Minute, time.Minute, zap.NewNop())

	_, err := reaper.Sweep(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestReaper_RunStopsWithContext(t *testing.T) {
	sweeper := &stubSweeper{}
	reaper := NewReaper(sweeper, time.Minute, 5*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, reaper.Run(ctx))
	assert.NotEmpty(t, sweeper.before)
}

func TestReaper_DisabledInterval(t *testing.T) {
	sweeper := &stubSweeper{}
	reaper := NewReaper(sweeper, time.Minute, 0, zap.NewNop())

	require.NoError(t, reaper.Run(context.Background()))
	assert.Empty(t, sweeper.before)
}
