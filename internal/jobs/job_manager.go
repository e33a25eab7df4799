package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions, seconds field first.
type Schedules struct {
	Reaper string
	Outbox string
}

// JobManager starts and stops every scheduled job together.
type JobManager struct {
	reaperJob *ExpiryReaperJob
	outboxJob *OutboxDispatchJob
}

func NewJobManager(
	schedules Schedules,
	sweepHandler expirySweeper,
	dispatchHandler outboxDispatcher,
	outboxBatchSize int,
	logger *slog.Logger,
) (*JobManager, error) {
	outboxJob, err := NewOutboxDispatchJob(dispatchHandler, outboxBatchSize, schedules.Outbox, logger)
	if err != nil {
		return nil, fmt.Errorf("outbox dispatch job: %w", err)
	}

	return &JobManager{
		reaperJob: NewExpiryReaperJob(sweepHandler, schedules.Reaper, logger),
		outboxJob: outboxJob,
	}, nil
}

// StartAll starts all jobs. If one fails to start, the ones already running
// are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.reaperJob.Start(); err != nil {
		return fmt.Errorf("failed to start expiry reaper job: %w", err)
	}

	if err := jm.outboxJob.Start(); err != nil {
		jm.reaperJob.Stop()
		return fmt.Errorf("failed to start outbox dispatch job: %w", err)
	}

	return nil
}

func (jm *JobManager) StopAll() {
	jm.outboxJob.Stop()
	jm.reaperJob.Stop()
}
