package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) Handle(ctx context.Context, cmd commands.SweepExpiredCommand) (commands.SweepResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SweepResult), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Handle(ctx context.Context, cmd commands.DispatchOutboxCommand) (commands.DispatchResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DispatchResult), args.Error(1)
}

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestExpiryReaperJob_RunOnce(t *testing.T) {
	t.Run("logs counts when something moved", func(t *testing.T) {
		var logs bytes.Buffer
		sweeper := new(MockSweeper)
		sweeper.On("Handle", mock.Anything, mock.Anything).
			Return(commands.SweepResult{ExpiredOrders: 2, ExpiredTransfers: 1}, nil).Once()

		jobs.NewExpiryReaperJob(sweeper, "* * * * * *", jsonLogger(&logs)).RunOnce(context.Background())

		sweeper.AssertExpectations(t)
		assert.Contains(t, logs.String(), `"expired_orders":2`)
		assert.Contains(t, logs.String(), `"expired_transfers":1`)
	})

	t.Run("quiet when nothing moved", func(t *testing.T) {
		var logs bytes.Buffer
		sweeper := new(MockSweeper)
		sweeper.On("Handle", mock.Anything, mock.Anything).Return(commands.SweepResult{}, nil).Once()

		jobs.NewExpiryReaperJob(sweeper, "* * * * * *", jsonLogger(&logs)).RunOnce(context.Background())

		assert.Empty(t, logs.String())
	})

	t.Run("logs failures", func(t *testing.T) {
		var logs bytes.Buffer
		sweeper := new(MockSweeper)
		sweeper.On("Handle", mock.Anything, mock.Anything).Return(commands.SweepResult{}, errors.New("deadlock detected")).Once()

		jobs.NewExpiryReaperJob(sweeper, "* * * * * *", jsonLogger(&logs)).RunOnce(context.Background())

		assert.Contains(t, logs.String(), "deadlock detected")
		assert.Contains(t, logs.String(), `"level":"ERROR"`)
	})
}

func TestExpiryReaperJob_InvalidSchedule(t *testing.T) {
	job := jobs.NewExpiryReaperJob(new(MockSweeper), "every now and then", slog.New(slog.DiscardHandler))
	require.Error(t, job.Start())
}

func TestOutboxDispatchJob_RunOnce(t *testing.T) {
	var logs bytes.Buffer
	dispatcher := new(MockDispatcher)
	dispatcher.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DispatchOutboxCommand) bool {
		return cmd.BatchSize() == 50
	})).Return(commands.DispatchResult{Claimed: 3, Delivered: 2, Failed: 1}, nil).Once()

	job, err := jobs.NewOutboxDispatchJob(dispatcher, 50, "* * * * * *", jsonLogger(&logs))
	require.NoError(t, err)
	job.RunOnce(context.Background())

	dispatcher.AssertExpectations(t)
	assert.Contains(t, logs.String(), `"failed":1`)
}

func TestOutboxDispatchJob_RejectsBatchSize(t *testing.T) {
	_, err := jobs.NewOutboxDispatchJob(new(MockDispatcher), 0, "* * * * * *", slog.New(slog.DiscardHandler))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestJobManager_StartAndStop(t *testing.T) {
	sweeper := new(MockSweeper)
	sweeper.On("Handle", mock.Anything, mock.Anything).Return(commands.SweepResult{}, nil).Maybe()
	dispatcher := new(MockDispatcher)
	dispatcher.On("Handle", mock.Anything, mock.Anything).Return(commands.DispatchResult{}, nil).Maybe()

	jm, err := jobs.NewJobManager(jobs.Schedules{Reaper: "0 0 * * * *", Outbox: "0 0 * * * *"},
		sweeper, dispatcher, 10, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	require.NoError(t, jm.StartAll())
	jm.StopAll()
}

func TestJobManager_BadOutboxScheduleStopsReaper(t *testing.T) {
	jm, err := jobs.NewJobManager(jobs.Schedules{Reaper: "0 0 * * * *", Outbox: "nope"},
		new(MockSweeper), new(MockDispatcher), 10, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	require.ErrorContains(t, jm.StartAll(), "outbox dispatch job")
}
