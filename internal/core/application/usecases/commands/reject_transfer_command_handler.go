package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/clock"
)

type RejectTransferCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewRejectTransferCommandHandler(uowFactory UoWFactory, clk clock.Clock) RejectTransferCommandHandler {
	return RejectTransferCommandHandler{uowFactory: uowFactory, clock: clk}
}

// Handle closes the offer as rejected and tells the proposer they still hold
// the order.
func (h RejectTransferCommandHandler) Handle(ctx context.Context, cmd RejectTransferCommand) error {
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

	transferRepo := uow.TransferRepository()
	driverRepo := uow.DriverRepository()

	tr, err := transferRepo.GetForUpdate(ctx, cmd.TransferID())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	if err = tr.Reject(cmd.DriverID(), now); err != nil {
		return err
	}

	if err = transferRepo.Update(ctx, tr); err != nil {
		return err
	}

	candidate, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	proposer, err := driverRepo.Get(ctx, tr.Proposer().DriverID)
	if err != nil {
		return err
	}

	if err = enqueueNotice(ctx, uow.OutboxRepository(), proposer.UserID(), services.TransferRejectedNotice(tr, candidate), now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.TransfersTotal.WithLabelValues("rejected").Inc()
	return nil
}
