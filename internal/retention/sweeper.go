package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/taskhub/taskhub/internal/metrics"
)

// Soft-deleted tasks stay invisible but on disk. The sweeper physically
// purges them once they have been deleted for longer than the retention
// window. A window of zero disables purging entirely.

const sweepSchedule = "13 3 * * *" // daily, off-peak

type purger interface {
	PurgeDeleted(ctx context.Context, cutoff time.Time) (int, error)
}

type Sweeper struct {
	repo      purger
	retainFor time.Duration
	logger    *slog.Logger
	cron      *cron.Cron
}

func NewSweeper(repo purger, retentionDays int, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		repo:      repo,
		retainFor: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    logger.With("component", "retention"),
	}
}

// Start schedules the daily sweep. No-op when retention is disabled.
func (s *Sweeper) Start() {
	if s.retainFor <= 0 {
		s.logger.Info("retention sweeper disabled")
		return
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(sweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.Sweep(ctx)
	}); err != nil {
		s.logger.Error("schedule retention sweep", "error", err)
		return
	}
	s.cron.Start()
	s.logger.Info("retention sweeper started", "retain_for", s.retainFor)
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

func (s *Sweeper) Sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.retainFor)

	purged, err := s.repo.PurgeDeleted(ctx, cutoff)
	if err != nil {
		s.logger.Error("purge deleted tasks", "error", err)
		return
	}
	if purged > 0 {
		metrics.RetentionPurgedTotal.Add(float64(purged))
		s.logger.Info("purged soft-deleted tasks", "count", purged, "cutoff", cutoff)
	}
}
