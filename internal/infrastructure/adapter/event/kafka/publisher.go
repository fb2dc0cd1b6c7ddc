package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	coreport "github.com/devshark/function-dynamodb-task/internal/domain/port/core"
	eventport "github.com/devshark/function-dynamodb-task/internal/domain/port/event"
	"github.com/segmentio/kafka-go"
)

// Publisher emits transaction-completed events to a Kafka topic. Messages are
// keyed by idempotency key so replays of the same transaction land on the same
// partition.
type Publisher struct {
	writer *kafka.Writer
	logger coreport.Logger
}

// NewPublisher creates a Kafka-backed event publisher
func NewPublisher(brokers []string, topic string, logger coreport.Logger) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: logger,
	}
}

// PublishTransactionCompleted serializes the event and writes it to the topic
func (p *Publisher) PublishTransactionCompleted(ctx context.Context, evt eventport.TransactionCompleted) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction completed event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.IdempotencyKey),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to publish transaction completed event: %w", err)
	}

	p.logger.Debug("Published transaction completed event", map[string]any{
		"idempotency_key": evt.IdempotencyKey,
		"user_id":         evt.UserID,
	})

	return nil
}

// Close flushes and closes the underlying writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Compile-time check that Publisher satisfies the event publisher port
var _ eventport.Publisher = (*Publisher)(nil)
