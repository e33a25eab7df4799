package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/transfer"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/clock"
	"dispatch/internal/pkg/errs"
)

// AcceptTransferCommandHandler completes the two-phase hand-off.
//
// Rows are locked in a fixed order, the ledger row first and the offer second,
// so concurrent accepts of sibling offers queue on the same ledger row instead
// of deadlocking. The offer is re-read under its lock because a sibling accept
// may have closed it while this call was waiting.
//
// If the proposer no longer holds the order (cancelled, completed or already
// handed to someone else) the offer is closed and StaleOwnership is returned.
// An offer that was answered while this call waited for the ledger lock is
// reported as not found, the same as a repeated answer.
type AcceptTransferCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewAcceptTransferCommandHandler(uowFactory UoWFactory, clk clock.Clock) AcceptTransferCommandHandler {
	return AcceptTransferCommandHandler{uowFactory: uowFactory, clock: clk}
}

func (h AcceptTransferCommandHandler) Handle(ctx context.Context, cmd AcceptTransferCommand) error {
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
	assignmentRepo := uow.AssignmentRepository()
	driverRepo := uow.DriverRepository()

	now := h.clock.Now()
	tr, err := transferRepo.Get(ctx, cmd.TransferID())
	if err != nil {
		return err
	}
	if err = tr.EnsureOpen(now); err != nil {
		return err
	}
	if err = tr.AuthorizeCandidate(cmd.DriverID()); err != nil {
		return err
	}

	proposer := tr.Proposer()
	a, err := assignmentRepo.GetActiveByOrderForUpdate(ctx, tr.OrderID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if err != nil || !a.IsHeldBy(proposer.DriverID) {
		return h.closeStale(ctx, uow, tr, now)
	}

	tr, err = transferRepo.GetForUpdate(ctx, cmd.TransferID())
	if err != nil {
		return err
	}
	if err = tr.Accept(cmd.DriverID(), now); err != nil {
		return err
	}

	if err = a.HandOff(cmd.DriverID(), assignment.PreviousDriver{
		ID:    proposer.DriverID,
		Name:  proposer.Name,
		Phone: proposer.Phone,
	}); err != nil {
		return err
	}

	if err = assignmentRepo.Update(ctx, a); err != nil {
		return err
	}

	if err = transferRepo.Update(ctx, tr); err != nil {
		return err
	}

	if _, err = transferRepo.ExpireSiblings(ctx, tr.OrderID(), tr.ID()); err != nil {
		return err
	}

	candidate, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	previous, err := driverRepo.Get(ctx, proposer.DriverID)
	if err != nil {
		return err
	}

	if err = enqueueNotice(ctx, uow.OutboxRepository(), previous.UserID(), services.TransferAcceptedNotice(tr, candidate), now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.TransfersTotal.WithLabelValues("accepted").Inc()
	return nil
}

// closeStale expires an offer whose proposer lost the order and commits that
// before reporting StaleOwnership.
func (h AcceptTransferCommandHandler) closeStale(ctx context.Context, uow UoW, tr *transfer.PendingTransfer, now time.Time) error {
	locked, err := uow.TransferRepository().GetForUpdate(ctx, tr.ID())
	if err != nil {
		return err
	}
	if locked.Status() != transfer.Pending {
		return locked.EnsureOpen(now)
	}

	locked.Expire()
	if err = uow.TransferRepository().Update(ctx, locked); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.TransfersTotal.WithLabelValues("stale").Inc()
	return errs.NewRuleViolationError(errs.ErrStaleOwnership,
		fmt.Sprintf("driver %s no longer holds order %s", tr.Proposer().DriverID, tr.OrderID()))
}
