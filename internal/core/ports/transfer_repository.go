package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/transfer"
)

type TransferRepository interface {
	Add(ctx context.Context, aggregate *transfer.PendingTransfer) error
	Update(ctx context.Context, aggregate *transfer.PendingTransfer) error
	Get(ctx context.Context, id kernel.UUID) (*transfer.PendingTransfer, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*transfer.PendingTransfer, error)

	// GetPendingByOrderAndCandidate returns the row still in Pending status
	// for the pair, whether or not its deadline has passed.
	GetPendingByOrderAndCandidate(ctx context.Context, orderID, newDriverID kernel.UUID) (*transfer.PendingTransfer, error)

	// ExpireSiblings closes every other pending offer for the order.
	ExpireSiblings(ctx context.Context, orderID, exceptID kernel.UUID) (int64, error)

	// ExpireStale closes pending offers whose deadline is not after now.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}
