package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/clock"
)

type PickupOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewPickupOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock) PickupOrderCommandHandler {
	return PickupOrderCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle moves an Accepted order to InDelivery. Only the holding driver may
// do so.
func (h PickupOrderCommandHandler) Handle(ctx context.Context, cmd PickupOrderCommand) error {
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

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Pickup(); err != nil {
		return err
	}

	if _, err = lockHeldAssignment(ctx, uow.AssignmentRepository(), o.ID(), cmd.DriverID()); err != nil {
		return err
	}

	drv, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = enqueueNotice(ctx, uow.OutboxRepository(), o.BuyerID(), services.OrderPickedUpNotice(o, drv), h.clock.Now()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.OrderTransitionsTotal.WithLabelValues(order.InDelivery.String()).Inc()
	return nil
}
