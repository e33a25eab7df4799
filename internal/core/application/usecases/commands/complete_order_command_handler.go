package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/clock"
)

// CompleteOrderCommandHandler closes a held order and its ledger row in one
// transaction and enqueues the buyer notice and the settlement event.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewCompleteOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	if err = o.Complete(); err != nil {
		return err
	}

	a, err := lockHeldAssignment(ctx, assignmentRepo, o.ID(), cmd.DriverID())
	if err != nil {
		return err
	}

	if err = a.Complete(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
		return err
	}

	now := h.clock.Now()
	if err = enqueueNotice(ctx, outboxRepo, o.BuyerID(), services.OrderCompletedNotice(o), now); err != nil {
		return err
	}

	if err = enqueueSettlement(ctx, outboxRepo, o, now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(order.Completed.String()).Inc()
	return nil
}
