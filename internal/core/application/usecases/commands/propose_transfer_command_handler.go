package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/transfer"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/clock"
	"dispatch/internal/pkg/errs"
)

// ProposeTransferCommandHandler opens a hand-off offer. The ledger row is
// locked so the offer is only written while the proposer really holds the
// order. A lapsed offer to the same candidate that the reaper has not closed
// yet is closed here instead of blocking the new one.
type ProposeTransferCommandHandler struct {
	uowFactory UoWFactory
	policy     services.ExpiryPolicy
	clock      clock.Clock
}

func NewProposeTransferCommandHandler(
	uowFactory UoWFactory,
	policy services.ExpiryPolicy,
	clk clock.Clock,
) ProposeTransferCommandHandler {
	return ProposeTransferCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clk,
	}
}

func (h ProposeTransferCommandHandler) Handle(ctx context.Context, cmd ProposeTransferCommand) error {
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

	driverRepo := uow.DriverRepository()
	transferRepo := uow.TransferRepository()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	current, err := driverRepo.Get(ctx, cmd.CurrentDriverID())
	if err != nil {
		return err
	}

	candidate, err := driverRepo.GetByPhone(ctx, cmd.NewDriverPhone())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewRuleViolationError(errs.ErrNotRegistered,
			fmt.Sprintf("no driver with phone %s", cmd.NewDriverPhone()))
	}
	if err != nil {
		return err
	}

	if candidate.IsEqual(current) {
		return errs.NewRuleViolationError(errs.ErrSelfTransfer, "")
	}

	if _, err = lockHeldAssignment(ctx, uow.AssignmentRepository(), o.ID(), current.ID()); err != nil {
		return err
	}

	now := h.clock.Now()
	existing, err := transferRepo.GetPendingByOrderAndCandidate(ctx, o.ID(), candidate.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return err
	case existing.IsOpen(now):
		return errs.NewRuleViolationError(errs.ErrDuplicatePending,
			fmt.Sprintf("offer %s is open until %s", existing.ID(), existing.ExpiresAt().Format("2006-01-02 15:04 MST")))
	default:
		existing.Expire()
		if err = transferRepo.Update(ctx, existing); err != nil {
			return err
		}
	}

	tr, err := transfer.NewPendingTransfer(cmd.TransferID(), o.ID(),
		transfer.Proposer{DriverID: current.ID(), Name: current.Name(), Phone: current.Phone()},
		candidate.ID(), now, h.policy.TransferTTL())
	if err != nil {
		return err
	}

	if err = transferRepo.Add(ctx, tr); err != nil {
		return err
	}

	if err = enqueueNotice(ctx, uow.OutboxRepository(), candidate.UserID(), services.TransferProposedNotice(o, tr), now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.TransfersTotal.WithLabelValues("proposed").Inc()
	return nil
}
