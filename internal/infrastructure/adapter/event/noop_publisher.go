package event

import (
	"context"

	eventport "github.com/devshark/function-dynamodb-task/internal/domain/port/event"
)

// NoopPublisher discards events. Used when event publishing is disabled.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that does nothing
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// PublishTransactionCompleted discards the event
func (p *NoopPublisher) PublishTransactionCompleted(ctx context.Context, evt eventport.TransactionCompleted) error {
	return nil
}

// Close does nothing
func (p *NoopPublisher) Close() error {
	return nil
}

var _ eventport.Publisher = (*NoopPublisher)(nil)
