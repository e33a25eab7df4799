package queries

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ExpirySweeper is the reaper as seen by the listing.
type ExpirySweeper interface {
	Handle(ctx context.Context, cmd commands.SweepExpiredCommand) (commands.SweepResult, error)
}

// ListUnacceptedOrdersQueryHandler runs a sweep before listing so an order
// past its acceptance window never shows up in the pool, even between two
// scheduled reaper runs.
type ListUnacceptedOrdersQueryHandler struct {
	db      *gorm.DB
	sweeper ExpirySweeper
}

func NewListUnacceptedOrdersQueryHandler(db *gorm.DB, sweeper ExpirySweeper) ListUnacceptedOrdersQueryHandler {
	return ListUnacceptedOrdersQueryHandler{db: db, sweeper: sweeper}
}

// Handle returns Unaccepted orders oldest first, each with its items.
func (h ListUnacceptedOrdersQueryHandler) Handle(ctx context.Context, query ListUnacceptedOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.sweeper.Handle(ctx, commands.NewSweepExpiredCommand()); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = ?
		ORDER BY created_at, id
	`, int(order.Unaccepted)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(ctx, h.db, rows)
}
