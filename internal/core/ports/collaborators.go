package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ProduceItem is a catalog entry sold directly by the platform.
type ProduceItem struct {
	ItemID    string
	Name      string
	UnitPrice decimal.Decimal
}

// ProduceCatalog resolves produce item ids to their current name and price.
type ProduceCatalog interface {
	Produce(ctx context.Context, itemID string) (ProduceItem, error)
}

// NotificationGateway delivers a text message to a user. It reports success
// instead of returning an error: callers record the outcome and move on.
type NotificationGateway interface {
	Send(ctx context.Context, userID kernel.UUID, text string) bool
}

// SettlementPublisher hands a completed-order event to the payment side.
type SettlementPublisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
}
