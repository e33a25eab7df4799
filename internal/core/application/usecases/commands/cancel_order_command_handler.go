package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/clock"
	"dispatch/internal/pkg/errs"
)

// CancelOrderCommandHandler withdraws an Unaccepted or Accepted order.
//
// When a driver held the order, its ledger row is removed and the driver is
// told. Open transfer offers for the order are left alone: accepting one later
// fails with StaleOwnership because the proposer no longer holds the order.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	wasHeld := o.Status() == order.Accepted
	if err = o.Cancel(cmd.BuyerID()); err != nil {
		return err
	}

	if wasHeld {
		a, err := assignmentRepo.GetActiveByOrderForUpdate(ctx, o.ID())
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			// Nothing to release.
		case err != nil:
			return err
		default:
			if err = assignmentRepo.Delete(ctx, a); err != nil {
				return err
			}

			drv, err := uow.DriverRepository().Get(ctx, a.DriverID())
			if err != nil {
				return err
			}

			if err = enqueueNotice(ctx, uow.OutboxRepository(), drv.UserID(), services.OrderCancelledNotice(o), h.clock.Now()); err != nil {
				return err
			}
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(order.Cancelled.String()).Inc()
	return nil
}
