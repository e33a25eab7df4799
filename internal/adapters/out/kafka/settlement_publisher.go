package kafka

import (
	"context"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
)

// SettlementPublisher implements ports.SettlementPublisher. The payload is
// already the JSON settlement event; the key is the order id.
type SettlementPublisher struct {
	writer messageWriter
}

func NewSettlementPublisher(cfg WriterConfig) *SettlementPublisher {
	return &SettlementPublisher{writer: newWriter(cfg)}
}

func (p *SettlementPublisher) Publish(ctx context.Context, key string, payload []byte) error {
	if err := p.writer.WriteMessages(ctx, kafkago.Message{Key: []byte(key), Value: payload}); err != nil {
		return fmt.Errorf("publish settlement %s: %w", key, err)
	}
	return nil
}

func (p *SettlementPublisher) Close() error {
	return p.writer.Close()
}
