package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EarningsResetJob zeroes every delivery agent's today-earnings counter at
// midnight. Lifetime earnings and completed delivery counts are untouched;
// a failed run is retried the next midnight and logged in between.
type EarningsResetJob struct {
	handler commands.ResetDailyEarningsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewEarningsResetJob creates a new job for the daily earnings rollover.
func NewEarningsResetJob(handler commands.ResetDailyEarningsCommandHandler, logger *slog.Logger) *EarningsResetJob {
	return &EarningsResetJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "earnings_reset_job"),
	}
}

// Start schedules the earnings reset to run at midnight.
func (j *EarningsResetJob) Start() error {
	_, err := j.cron.AddFunc("0 0 0 * * *", func() {
		ctx := context.Background()
		cmd := commands.NewResetDailyEarningsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Earnings reset job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Daily agent earnings reset")
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Earnings reset job started (running at midnight)")
	return nil
}

// Stop stops the earnings reset job.
func (j *EarningsResetJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Earnings reset job stopped")
}
