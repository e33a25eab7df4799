package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListOrdersByPartyQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersByPartyQueryHandler(db *gorm.DB) ListOrdersByPartyQueryHandler {
	return ListOrdersByPartyQueryHandler{db: db}
}

// Handle returns the party's orders in every status, newest first. An id
// with no orders yields an empty list.
func (h ListOrdersByPartyQueryHandler) Handle(ctx context.Context, query ListOrdersByPartyQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE `+query.Party().column()+` = ?
		ORDER BY created_at DESC, id
	`, query.PartyID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(ctx, h.db, rows)
}
