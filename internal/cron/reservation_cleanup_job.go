package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/oakhallsupply/stockroom-backend/pkg/logger"
	"github.com/oakhallsupply/stockroom-backend/pkg/metrics"
)

const reservationRetentionDays = 30

// ReservationCleanupJobParams configure the reservation cleanup job.
type ReservationCleanupJobParams struct {
	Logger        *logger.Logger
	Reservations  reservationSweeper
	RetentionDays int
	Metrics       *metrics.CronJobMetrics
}

type reservationSweeper interface {
	CleanupExpired(ctx context.Context) (int, error)
	PurgeStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewReservationCleanupJob builds the job that expires stale holds and purges
// long-settled reservation rows.
func NewReservationCleanupJob(params ReservationCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Reservations == nil {
		return nil, fmt.Errorf("reservation service required")
	}
	retention := params.RetentionDays
	if retention <= 0 {
		retention = reservationRetentionDays
	}
	return &reservationCleanupJob{
		logg:      params.Logger,
		sweeper:   params.Reservations,
		retention: retention,
		metrics:   params.Metrics,
		now:       time.Now,
	}, nil
}

type reservationCleanupJob struct {
	logg      *logger.Logger
	sweeper   reservationSweeper
	retention int
	metrics   *metrics.CronJobMetrics
	now       func() time.Time
}

func (j *reservationCleanupJob) Name() string { return "reservation-cleanup" }

// Run sweeps expired holds first, then purges settled rows past retention.
// The purge runs even when the sweep fails; both errors are reported.
func (j *reservationCleanupJob) Run(ctx context.Context) error {
	var errs error

	swept, err := j.sweeper.CleanupExpired(ctx)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("expire reservations: %w", err))
	}

	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	purged, err := j.sweeper.PurgeStale(ctx, cutoff)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("purge reservations: %w", err))
	}

	j.metrics.AddSwept(j.Name(), swept+int(purged))

	if errs != nil {
		return errs
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"holds_expired":  swept,
		"rows_purged":    purged,
		"retention_days": j.retention,
		"cutoff":         cutoff,
	})
	j.logg.Info(logCtx, "reservation cleanup complete")
	return nil
}
