package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lockerhub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReservationReleaseJob periodically returns abandoned cell reservations to
// the allocatable pool. Runs every 30 seconds.
type ReservationReleaseJob struct {
	handler commands.ReleaseExpiredReservationsCommandHandler
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewReservationReleaseJob creates a job sweeping reservations older than
// the given TTL. Uses ReleaseExpiredReservationsCommandHandler for the
// actual release.
func NewReservationReleaseJob(
	handler commands.ReleaseExpiredReservationsCommandHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *ReservationReleaseJob {
	return &ReservationReleaseJob{
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "reservation_release_job"),
	}
}

// Start begins the reservation sweep to run every 30 seconds.
func (j *ReservationReleaseJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewReleaseExpiredReservationsCommand(j.ttl)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Reservation release command rejected", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// A sweep overlapping a concurrent placement is expected noise
			if !errors.Is(err, context.Canceled) {
				j.logger.ErrorContext(ctx, "Reservation release job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reservation release job started (running every 30 seconds)")
	return nil
}

// Stop stops the reservation sweep.
func (j *ReservationReleaseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reservation release job stopped")
}
