// Package ports defines the contracts between the application layer and the
// infrastructure: repositories, the unit of work and outbound collaborators.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and note. Items and total price are immutable.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id without locking.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and holds a row lock until the
	// surrounding transaction ends. Concurrent callers on the same order
	// are serialised here.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ExpireUnaccepted moves every Unaccepted order created before cutoff to
	// Expired and returns how many rows changed.
	ExpireUnaccepted(ctx context.Context, cutoff time.Time) (int64, error)

	// MarkOverdue moves every Accepted order created before cutoff to
	// DeliveryOverdue and returns how many rows changed.
	MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error)
}
