package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/outbox"
	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/clock"
)

// DispatchResult counts what one dispatch pass did.
type DispatchResult struct {
	Claimed   int
	Delivered int
	Failed    int
}

// DispatchOutboxCommandHandler drains the outbox.
//
// A batch is claimed with SKIP LOCKED and marked Processing in a short
// transaction, so parallel dispatchers never pick the same row. Delivery runs
// after that commit and each outcome is stored on its own. A failed
// notification is logged and recorded, never retried, and never affects the
// domain change that produced it.
type DispatchOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	gateway    ports.NotificationGateway
	publisher  ports.SettlementPublisher
	clock      clock.Clock
	logger     *slog.Logger
}

func NewDispatchOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	gateway ports.NotificationGateway,
	publisher ports.SettlementPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) DispatchOutboxCommandHandler {
	return DispatchOutboxCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		publisher:  publisher,
		clock:      clk,
		logger:     logger.With("component", "outbox-dispatcher"),
	}
}

func (h DispatchOutboxCommandHandler) Handle(ctx context.Context, cmd DispatchOutboxCommand) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	messages, err := h.claim(ctx, cmd.BatchSize())
	if err != nil {
		return DispatchResult{}, err
	}

	result := DispatchResult{Claimed: len(messages)}
	recorder := h.uowFactory.Create().OutboxRepository()

	for _, msg := range messages {
		reason := h.deliver(ctx, msg)
		now := h.clock.Now()

		outcome := "delivered"
		if reason == "" {
			err = msg.MarkDelivered(now)
			result.Delivered++
		} else {
			outcome = "failed"
			err = msg.MarkFailed(now, reason)
			result.Failed++
			h.logger.WarnContext(ctx, "outbox message not delivered",
				"message_id", msg.ID().String(),
				"kind", msg.Kind().String(),
				"reason", reason,
			)
		}
		if err != nil {
			return result, err
		}
		metrics.OutboxDispatchedTotal.WithLabelValues(msg.Kind().String(), outcome).Inc()

		if err = recorder.Update(ctx, msg); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (h DispatchOutboxCommandHandler) claim(ctx context.Context, limit int) ([]*outbox.Message, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OutboxRepository()
	messages, err := repo.ClaimPending(ctx, limit)
	if err != nil {
		return nil, err
	}

	for _, msg := range messages {
		if err = msg.MarkProcessing(); err != nil {
			return nil, err
		}
		if err = repo.Update(ctx, msg); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return messages, nil
}

// deliver returns an empty string on success and the failure reason otherwise.
func (h DispatchOutboxCommandHandler) deliver(ctx context.Context, msg *outbox.Message) string {
	switch msg.Kind() {
	case outbox.Notification:
		recipient := msg.RecipientID()
		if recipient == nil {
			return "notification has no recipient"
		}
		if !h.gateway.Send(ctx, *recipient, msg.Text()) {
			return "notification gateway refused the message"
		}
		return ""
	case outbox.Settlement:
		if err := h.publisher.Publish(ctx, msg.Key(), msg.Payload()); err != nil {
			return err.Error()
		}
		return ""
	default:
		return "unknown message kind " + msg.Kind().String()
	}
}
