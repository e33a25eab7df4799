package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPickupOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	e := newEnv()
	o := newTestOrder(t, kernel.NewUUID(), now)
	d := newTestDriver(t, "Dana", "+79990000001")
	a := acceptedBy(t, o, d, now)

	e.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	e.assignments.On("GetActiveByOrderForUpdate", ctx, o.ID()).Return(a, nil).Once()
	e.drivers.On("Get", ctx, d.ID()).Return(d, nil).Once()
	e.orders.On("Update", ctx, o).Return(nil).Once()
	e.outbox.On("Add", ctx, notificationTo(o.BuyerID())).Return(nil).Once()
	e.expectCommit()

	cmd, err := commands.NewPickupOrderCommand(o.ID(), d.ID())
	require.NoError(t, err)

	err = commands.NewPickupOrderCommandHandler(e.factory, e.clock).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InDelivery, o.Status())
	e.assertExpectations(t)
}

func TestPickupOrderCommandHandler_Handle_NotHolder(t *testing.T) {
	ctx := t.Context()
	e := newEnv()
	o := newTestOrder(t, kernel.NewUUID(), now)
	holder := newTestDriver(t, "Dana", "+79990000001")
	other := newTestDriver(t, "Omar", "+79990000002")
	a := acceptedBy(t, o, holder, now)

	e.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	e.assignments.On("GetActiveByOrderForUpdate", ctx, o.ID()).Return(a, nil).Once()

	cmd, _ := commands.NewPickupOrderCommand(o.ID(), other.ID())
	err := commands.NewPickupOrderCommandHandler(e.factory, e.clock).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotHolder)
	e.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	e.assertNotCommitted(t)
}

func TestPickupOrderCommandHandler_Handle_UnacceptedOrder(t *testing.T) {
	ctx := t.Context()
	e := newEnv()
	o := newTestOrder(t, kernel.NewUUID(), now)

	e.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

	cmd, _ := commands.NewPickupOrderCommand(o.ID(), kernel.NewUUID())
	err := commands.NewPickupOrderCommandHandler(e.factory, e.clock).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	e.assertNotCommitted(t)
}
