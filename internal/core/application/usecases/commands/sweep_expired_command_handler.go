package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/clock"
)

// SweepResult counts the rows one sweep moved.
type SweepResult struct {
	ExpiredOrders    int64
	OverdueOrders    int64
	ExpiredTransfers int64
}

// Total is the number of rows changed by the sweep.
func (r SweepResult) Total() int64 {
	return r.ExpiredOrders + r.OverdueOrders + r.ExpiredTransfers
}

// SweepExpiredCommandHandler is the ExpiryReaper. Each step is a single
// conditional bulk UPDATE, so a row already moved by a concurrent sweep or by
// a user action simply no longer matches. Running it twice in a row changes
// nothing the second time.
type SweepExpiredCommandHandler struct {
	uowFactory UoWFactory
	policy     services.ExpiryPolicy
	clock      clock.Clock
}

func NewSweepExpiredCommandHandler(
	uowFactory UoWFactory,
	policy services.ExpiryPolicy,
	clk clock.Clock,
) SweepExpiredCommandHandler {
	return SweepExpiredCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clk,
	}
}

func (h SweepExpiredCommandHandler) Handle(ctx context.Context, cmd SweepExpiredCommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SweepResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	now := h.clock.Now()

	var (
		result SweepResult
		err    error
	)

	if result.ExpiredOrders, err = orderRepo.ExpireUnaccepted(ctx, h.policy.UnacceptedCutoff(now)); err != nil {
		return SweepResult{}, err
	}

	if result.OverdueOrders, err = orderRepo.MarkOverdue(ctx, h.policy.OverdueCutoff(now)); err != nil {
		return SweepResult{}, err
	}

	if result.ExpiredTransfers, err = uow.TransferRepository().ExpireStale(ctx, now); err != nil {
		return SweepResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SweepResult{}, err
	}

	metrics.ReaperSweptTotal.WithLabelValues("expired_orders").Add(float64(result.ExpiredOrders))
	metrics.ReaperSweptTotal.WithLabelValues("overdue_orders").Add(float64(result.OverdueOrders))
	metrics.ReaperSweptTotal.WithLabelValues("expired_transfers").Add(float64(result.ExpiredTransfers))
	return result, nil
}
