package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/transfer"
	"dispatch/internal/pkg/clock"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListPendingTransfersQueryHandler struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewListPendingTransfersQueryHandler(db *gorm.DB, clk clock.Clock) ListPendingTransfersQueryHandler {
	return ListPendingTransfersQueryHandler{db: db, clock: clk}
}

// Handle lists open offers addressed to the driver, newest first. Rows still
// Pending but past expires_at are filtered out here rather than waiting for
// the reaper.
func (h ListPendingTransfersQueryHandler) Handle(
	ctx context.Context,
	query ListPendingTransfersQuery,
) ([]PendingTransferView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, order_id, proposer_id, proposer_name, proposer_phone, created_at, expires_at
		FROM pending_transfers
		WHERE new_driver_id = ? AND status = ? AND expires_at > ?
		ORDER BY created_at DESC, id
	`, query.DriverID().Bytes(), int(transfer.Pending), h.clock.Now()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]PendingTransferView, 0)
	for rows.Next() {
		var (
			view                    PendingTransferView
			id, orderID, proposerID uuid.UUID
		)
		if err = rows.Scan(&id, &orderID, &proposerID, &view.ProposerName, &view.ProposerPhone,
			&view.CreatedAt, &view.ExpiresAt); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if view.ProposerID, err = kernel.UUIDFromBytes(proposerID[:]); err != nil {
			return nil, err
		}
		view.CreatedAt = view.CreatedAt.UTC()
		view.ExpiresAt = view.ExpiresAt.UTC()
		views = append(views, view)
	}

	return views, rows.Err()
}
