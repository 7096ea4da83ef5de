// Package scheduler runs the periodic contest live-flag sync, replacing a
// cron entry with an in-process ticker loop.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const defaultInterval = time.Minute

// LiveSyncer is the slice of the contest service the scheduler drives.
type LiveSyncer interface {
	SyncLive(ctx context.Context, now time.Time) error
}

// ContestScheduler toggles contest live flags on a fixed interval. A failed
// pass is logged and retried on the next tick; there is no backoff because
// the operation is idempotent and cheap.
type ContestScheduler struct {
	contests LiveSyncer
	interval time.Duration
	log      zerolog.Logger
}

// NewContestScheduler creates a scheduler ticking every interval. If
// interval <= 0, defaultInterval is used.
func NewContestScheduler(contests LiveSyncer, interval time.Duration, log zerolog.Logger) *ContestScheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &ContestScheduler{contests: contests, interval: interval, log: log}
}

// Start launches the sync loop. It runs one pass immediately so flags are
// correct at boot, then ticks until ctx is cancelled.
func (s *ContestScheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *ContestScheduler) run(ctx context.Context) {
	s.pass(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("contest scheduler stopped")
			return
		case <-ticker.C:
			s.pass(ctx)
		}
	}
}

func (s *ContestScheduler) pass(ctx context.Context) {
	if err := s.contests.SyncLive(ctx, time.Now().UTC()); err != nil {
		s.log.Error().Err(err).Msg("contest live sync pass failed")
	}
}
