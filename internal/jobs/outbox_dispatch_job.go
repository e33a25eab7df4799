package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type outboxDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchOutboxCommand) (commands.DispatchResult, error)
}

// OutboxDispatchJob delivers pending outbox messages on a schedule.
// cron.SkipIfStillRunning keeps one pass per instance at a time.
type OutboxDispatchJob struct {
	handler  outboxDispatcher
	cmd      commands.DispatchOutboxCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOutboxDispatchJob(
	handler outboxDispatcher,
	batchSize int,
	schedule string,
	logger *slog.Logger,
) (*OutboxDispatchJob, error) {
	cmd, err := commands.NewDispatchOutboxCommand(batchSize)
	if err != nil {
		return nil, err
	}

	logger = logger.With("component", "outbox_dispatch_job")
	return &OutboxDispatchJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
	}, nil
}

func (j *OutboxDispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job started", "schedule", j.schedule)
	return nil
}

// RunOnce drains one batch.
func (j *OutboxDispatchJob) RunOnce(ctx context.Context) {
	result, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox dispatch failed", "error", err)
		return
	}
	if result.Failed > 0 {
		j.logger.WarnContext(ctx, "Outbox dispatch had failures",
			"claimed", result.Claimed, "delivered", result.Delivered, "failed", result.Failed)
	}
}

func (j *OutboxDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job stopped")
}
