package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/clock"

	kafkago "github.com/segmentio/kafka-go"
)

// NotificationEvent is the record written to the notification topic.
type NotificationEvent struct {
	UserID string    `json:"user_id"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// NotificationGateway implements ports.NotificationGateway. A failed write is
// logged and reported as false; the outbox records it as Failed.
type NotificationGateway struct {
	writer messageWriter
	clock  clock.Clock
	logger *slog.Logger
}

func NewNotificationGateway(cfg WriterConfig, clk clock.Clock, logger *slog.Logger) *NotificationGateway {
	return newNotificationGateway(newWriter(cfg), clk, logger)
}

func newNotificationGateway(w messageWriter, clk clock.Clock, logger *slog.Logger) *NotificationGateway {
	return &NotificationGateway{
		writer: w,
		clock:  clk,
		logger: logger.With("component", "kafka_notification_gateway"),
	}
}

func (g *NotificationGateway) Send(ctx context.Context, userID kernel.UUID, text string) bool {
	now := g.clock.Now()
	payload, err := json.Marshal(NotificationEvent{
		UserID: userID.String(),
		Text:   text,
		SentAt: now,
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "encode notification", "user_id", userID.String(), "error", err)
		return false
	}

	err = g.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(userID.String()),
		Value: payload,
		Time:  now,
	})
	if err != nil {
		g.logger.WarnContext(ctx, "notification not written", "user_id", userID.String(), "error", err)
		return false
	}
	return true
}

func (g *NotificationGateway) Close() error {
	return g.writer.Close()
}
