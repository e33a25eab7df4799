package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/clock"
	"dispatch/internal/pkg/errs"
)

// AcceptOrderCommandHandler is the admission path from the pool to a driver.
//
// The order row is locked before any check runs, so of N drivers racing for
// the same order exactly one sees it Unaccepted; the others fail with
// AlreadyAssigned once the winner commits.
//
// Example:
//
//	cmd, _ := NewAcceptOrderCommand(orderID, driverID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrAlreadyAssigned):
//	    // someone was faster
//	case errors.Is(err, errs.ErrExpired):
//	    // the order has left the pool for good
//	}
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.ExpiryPolicy
	clock      clock.Clock
}

func NewAcceptOrderCommandHandler(
	uowFactory UoWFactory,
	policy services.ExpiryPolicy,
	clk clock.Clock,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clk,
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	assignmentRepo := uow.AssignmentRepository()

	drv, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	overdue, err := assignmentRepo.CountOverdueByDriver(ctx, drv.ID(), h.policy.BacklogCutoff(now))
	if err != nil {
		return err
	}

	a, err := services.NewOrderDispatcher(h.policy).Dispatch(o, drv, overdue, kernel.NewUUID(), now)
	if errors.Is(err, errs.ErrExpired) {
		// The expiry is a real state change and outlives the failed accept.
		if updateErr := orderRepo.Update(ctx, o); updateErr != nil {
			return updateErr
		}
		if commitErr := uow.Commit(ctx); commitErr != nil {
			return commitErr
		}
		metrics.OrderTransitionsTotal.WithLabelValues(order.Expired.String()).Inc()
		return err
	}
	if err != nil {
		return err
	}

	if err = assignmentRepo.Add(ctx, a); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = enqueueNotice(ctx, uow.OutboxRepository(), o.BuyerID(), services.OrderAcceptedNotice(o, drv), now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(order.Accepted.String()).Inc()
	return nil
}
