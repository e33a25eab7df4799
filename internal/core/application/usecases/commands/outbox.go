package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/core/ports"
)

// enqueueNotice writes a notification intent in the caller's transaction.
// Delivery happens after commit, so a failed send never undoes the change.
func enqueueNotice(ctx context.Context, repo ports.OutboxRepository, recipient kernel.UUID, text string, now time.Time) error {
	msg, err := outbox.NewNotification(kernel.NewUUID(), recipient, text, now)
	if err != nil {
		return err
	}
	return repo.Add(ctx, msg)
}

// enqueueSettlement writes the completed-order event for the payment side.
func enqueueSettlement(ctx context.Context, repo ports.OutboxRepository, o *order.Order, now time.Time) error {
	msg, err := outbox.NewSettlement(kernel.NewUUID(), o.ID(), now, o.TotalPrice())
	if err != nil {
		return err
	}
	return repo.Add(ctx, msg)
}
