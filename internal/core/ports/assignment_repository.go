package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository is the AssignmentLedger. Storage rejects a second
// Accepted row for the same order.
type AssignmentRepository interface {
	Add(ctx context.Context, aggregate *assignment.Assignment) error
	Update(ctx context.Context, aggregate *assignment.Assignment) error
	Delete(ctx context.Context, aggregate *assignment.Assignment) error

	// GetActiveByOrderForUpdate locks the Accepted row for the order.
	GetActiveByOrderForUpdate(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// CountOverdueByDriver counts orders the driver still holds that were
	// accepted before acceptedBefore and are not delivered yet.
	CountOverdueByDriver(ctx context.Context, driverID kernel.UUID, acceptedBefore time.Time) (int64, error)
}
