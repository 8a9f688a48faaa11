package retention

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type fakePurger struct {
	purgeDeleted func(ctx context.Context, cutoff time.Time) (int, error)
}

func (f *fakePurger) PurgeDeleted(ctx context.Context, cutoff time.Time) (int, error) {
	return f.purgeDeleted(ctx, cutoff)
}

func TestSweep_CutoffRespectsRetentionWindow(t *testing.T) {
	var gotCutoff time.Time
	repo := &fakePurger{
		purgeDeleted: func(_ context.Context, cutoff time.Time) (int, error) {
			gotCutoff = cutoff
			return 3, nil
		},
	}

	s := NewSweeper(repo, 30, slog.Default())
	before := time.Now().Add(-30 * 24 * time.Hour)
	s.Sweep(context.Background())
	after := time.Now().Add(-30 * 24 * time.Hour)

	if gotCutoff.Before(before) || gotCutoff.After(after) {
		t.Errorf("cutoff = %v, want roughly now minus 30 days", gotCutoff)
	}
}

func TestSweep_PurgeErrorIsNonFatal(t *testing.T) {
	repo := &fakePurger{
		purgeDeleted: func(_ context.Context, _ time.Time) (int, error) {
			return 0, errors.New("connection refused")
		},
	}

	s := NewSweeper(repo, 7, slog.Default())
	// Must not panic; errors are logged and the next run retries.
	s.Sweep(context.Background())
}

func TestStart_DisabledWhenRetentionZero(t *testing.T) {
	repo := &fakePurger{
		purgeDeleted: func(_ context.Context, _ time.Time) (int, error) {
			t.Error("purge should never run when retention is disabled")
			return 0, nil
		},
	}

	s := NewSweeper(repo, 0, slog.Default())
	s.Start()
	if s.cron != nil {
		t.Error("cron scheduler should not be created when disabled")
	}
	s.Stop()
}

func TestStartStop_Lifecycle(t *testing.T) {
	repo := &fakePurger{
		purgeDeleted: func(_ context.Context, _ time.Time) (int, error) {
			return 0, nil
		},
	}

	s := NewSweeper(repo, 1, slog.Default())
	s.Start()
	if s.cron == nil {
		t.Fatal("cron scheduler should be running")
	}
	s.Stop()
}
