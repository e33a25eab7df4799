package ports

import (
	"context"

	"dispatch/internal/core/domain/model/outbox"
)

// OutboxRepository stores delivery intents written in the same transaction
// as the domain change that caused them.
type OutboxRepository interface {
	Add(ctx context.Context, message *outbox.Message) error

	// ClaimPending locks up to limit Pending messages, oldest first, skipping
	// rows another dispatcher already holds.
	ClaimPending(ctx context.Context, limit int) ([]*outbox.Message, error)

	Update(ctx context.Context, message *outbox.Message) error
}
