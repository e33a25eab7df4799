package commands_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	e := newEnv()
	o := newTestOrder(t, kernel.NewUUID(), now.Add(-30*time.Minute))
	d := newTestDriver(t, "Dana", "+79990000001")

	e.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()
	e.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	e.assignments.On("CountOverdueByDriver", ctx, d.ID(), now.Add(-2*time.Hour)).Return(int64(0), nil).Once()
	e.assignments.On("Add", ctx, mock.MatchedBy(func(a *assignment.Assignment) bool {
		return a.OrderID().IsEqual(o.ID()) && a.IsHeldBy(d.ID()) && a.AcceptedAt().Equal(now)
	})).Return(nil).Once()
	e.orders.On("Update", ctx, o).Return(nil).Once()
	e.outbox.On("Add", ctx, notificationTo(o.BuyerID())).Return(nil).Once()
	e.expectCommit()

	cmd, err := commands.NewAcceptOrderCommand(o.ID(), d.ID())
	require.NoError(t, err)

	handler := commands.NewAcceptOrderCommandHandler(e.factory, services.DefaultExpiryPolicy(), e.clock)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Accepted, o.Status())
	e.assertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_ExpiredOrderIsPersistedAsExpired(t *testing.T) {
	ctx := t.Context()
	e := newEnv()
	o := newTestOrder(t, kernel.NewUUID(), now.Add(-3*time.Hour))
	d := newTestDriver(t, "Dana", "+79990000001")

	e.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()
	e.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	e.assignments.On("CountOverdueByDriver", ctx, d.ID(), mock.Anything).Return(int64(0), nil).Once()
	e.orders.On("Update", ctx, mock.MatchedBy(func(got *order.Order) bool {
		return got.Status() == order.Expired
	})).Return(nil).Once()
	e.expectCommit()

	cmd, _ := commands.NewAcceptOrderCommand(o.ID(), d.ID())
	handler := commands.NewAcceptOrderCommandHandler(e.factory, services.DefaultExpiryPolicy(), e.clock)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrExpired)
	e.assignments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	e.outbox.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	e.assertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_RuleViolationsCommitNothing(t *testing.T) {
	buyer := kernel.NewUUID()

	testCases := []struct {
		name    string
		prepare func(t *testing.T, o *order.Order)
		buyer   bool
		overdue int64
		want    error
	}{
		{
			name:    "already assigned",
			prepare: func(t *testing.T, o *order.Order) { require.NoError(t, o.Accept()) },
			want:    errs.ErrAlreadyAssigned,
		},
		{
			name:  "self assignment",
			buyer: true,
			want:  errs.ErrSelfAssignment,
		},
		{
			name:    "overdue backlog",
			overdue: 1,
			want:    errs.ErrOverdueBacklog,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			e := newEnv()
			o := newTestOrder(t, buyer, now.Add(-time.Minute))
			if tc.prepare != nil {
				tc.prepare(t, o)
			}
			d := newTestDriver(t, "Dana", "+79990000001")
			if tc.buyer {
				d = newDriverForUser(t, buyer)
			}

			e.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()
			e.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			e.assignments.On("CountOverdueByDriver", ctx, d.ID(), mock.Anything).Return(tc.overdue, nil).Once()

			cmd, _ := commands.NewAcceptOrderCommand(o.ID(), d.ID())
			handler := commands.NewAcceptOrderCommandHandler(e.factory, services.DefaultExpiryPolicy(), e.clock)
			err := handler.Handle(ctx, cmd)

			require.ErrorIs(t, err, tc.want)
			e.assertNotCommitted(t)
			e.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestAcceptOrderCommandHandler_Handle_UnknownDriver(t *testing.T) {
	ctx := t.Context()
	e := newEnv()
	driverID := kernel.NewUUID()

	e.drivers.On("Get", ctx, driverID).Return(nil, errs.NewObjectNotFoundError("driver", driverID.String())).Once()

	cmd, _ := commands.NewAcceptOrderCommand(kernel.NewUUID(), driverID)
	handler := commands.NewAcceptOrderCommandHandler(e.factory, services.DefaultExpiryPolicy(), e.clock)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	e.orders.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	e.assertNotCommitted(t)
}

func TestAcceptOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	cmd, _ := commands.NewAcceptOrderCommand(kernel.NewUUID(), kernel.NewUUID())
	handler := commands.NewAcceptOrderCommandHandler(factory, services.DefaultExpiryPolicy(), newEnv().clock)
	err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAcceptOrderCommandHandler_Handle_NotConstructed(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewAcceptOrderCommandHandler(factory, services.DefaultExpiryPolicy(), newEnv().clock)

	err := handler.Handle(t.Context(), commands.AcceptOrderCommand{})

	require.ErrorIs(t, err, commands.ErrAcceptOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
