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

// DisposeOrderCommandHandler applies a manual disposition to stale goods.
// The active ledger row, if any, is completed so the driver's backlog clears.
// A CustomerStillWants outcome completes the order and is settled like a
// normal delivery.
type DisposeOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewDisposeOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock) DisposeOrderCommandHandler {
	return DisposeOrderCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h DisposeOrderCommandHandler) Handle(ctx context.Context, cmd DisposeOrderCommand) error {
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
	outboxRepo := uow.OutboxRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Dispose(cmd.Disposition(), cmd.Reason()); err != nil {
		return err
	}

	a, err := assignmentRepo.GetActiveByOrderForUpdate(ctx, o.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return err
	default:
		if err = a.Complete(); err != nil {
			return err
		}
		if err = assignmentRepo.Update(ctx, a); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	now := h.clock.Now()
	if err = enqueueNotice(ctx, outboxRepo, o.BuyerID(), services.OrderDisposedNotice(o, cmd.Disposition()), now); err != nil {
		return err
	}

	if o.Status() == order.Completed {
		if err = enqueueSettlement(ctx, outboxRepo, o, now); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(o.Status().String()).Inc()
	return nil
}
