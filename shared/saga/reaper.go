package saga

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// StalePendingSweeper is implemented by participant repositories. It moves
// local records stuck in PENDING since before the cutoff to FAIL.
type StalePendingSweeper interface {
	FailStalePending(ctx context.Context, before time.Time) (int64, error)
}

// Reaper closes orphaned PENDING records left by a participant that crashed
// between creating its record and publishing the hop result.
type Reaper struct {
	sweeper  StalePendingSweeper
	maxAge   time.Duration
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewReaper creates a reaper that fails records older than maxAge every interval
func NewReaper(sweeper StalePendingSweeper, maxAge, interval time.Duration, logger *zap.Logger) *Reaper {
	return &Reaper{
		sweeper:  sweeper,
		maxAge:   maxAge,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Sweep runs one pass and returns how many records were failed
func (r *Reaper) Sweep(ctx context.Context) (int64, error) {
	cutoff := r.now().Add(-r.maxAge)
	n, err := r.sweeper.FailStalePending(ctx, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "failed to sweep stale pending records")
	}
	if n > 0 {
		r.logger.Warn("failed stale pending records",
			zap.Int64("count", n),
			zap.Time("cutoff", cutoff),
		)
	}
	return n, nil
}

// Run sweeps on every tick until ctx is done. Sweep errors are logged and the
// next tick tries again.
func (r *Reaper) Run(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := r.Sweep(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("stale pending sweep failed", zap.Error(err))
			}
		}
	}
}
