package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type expirySweeper interface {
	Handle(ctx context.Context, cmd commands.SweepExpiredCommand) (commands.SweepResult, error)
}

// ExpiryReaperJob runs SweepExpired on a schedule.
type ExpiryReaperJob struct {
	handler  expirySweeper
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewExpiryReaperJob(handler expirySweeper, schedule string, logger *slog.Logger) *ExpiryReaperJob {
	return &ExpiryReaperJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "expiry_reaper_job"),
	}
}

func (j *ExpiryReaperJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiry reaper job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs one sweep and logs what it changed.
func (j *ExpiryReaperJob) RunOnce(ctx context.Context) {
	result, err := j.handler.Handle(ctx, commands.NewSweepExpiredCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Expiry sweep failed", "error", err)
		return
	}
	if result.Total() > 0 {
		j.logger.InfoContext(ctx, "Expiry sweep",
			"expired_orders", result.ExpiredOrders,
			"overdue_orders", result.OverdueOrders,
			"expired_transfers", result.ExpiredTransfers,
		)
	}
}

// Stop waits for a running sweep to finish.
func (j *ExpiryReaperJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Expiry reaper job stopped")
}
