// Package logsink writes notices and settlement events to the structured log.
// It stands in for Kafka when no brokers are configured, e.g. in local runs.
package logsink

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
)

type NotificationGateway struct {
	logger *slog.Logger
}

func NewNotificationGateway(logger *slog.Logger) *NotificationGateway {
	return &NotificationGateway{logger: logger.With("component", "notification_log")}
}

// Send never fails.
func (g *NotificationGateway) Send(ctx context.Context, userID kernel.UUID, text string) bool {
	g.logger.InfoContext(ctx, "notification", "user_id", userID.String(), "text", text)
	return true
}

type SettlementPublisher struct {
	logger *slog.Logger
}

func NewSettlementPublisher(logger *slog.Logger) *SettlementPublisher {
	return &SettlementPublisher{logger: logger.With("component", "settlement_log")}
}

func (p *SettlementPublisher) Publish(ctx context.Context, key string, payload []byte) error {
	p.logger.InfoContext(ctx, "settlement", "key", key, "payload", string(payload))
	return nil
}
