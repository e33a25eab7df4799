// Package kafka delivers outbox messages to Kafka topics: user notices to the
// notification topic and completed-order events to the settlement topic.
// Both writers key messages so events for one user or one order land on the
// same partition and keep their order.
package kafka

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafkago.Writer the adapters use.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// WriterConfig describes one topic writer.
type WriterConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

func newWriter(cfg WriterConfig) *kafkago.Writer {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		WriteTimeout:           timeout,
		AllowAutoTopicCreation: true,
	}
}
