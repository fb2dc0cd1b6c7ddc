package event

import (
	"context"
	"time"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TransactionCompleted is emitted after an atomic write commits. Idempotent
// replays do not emit: one ledger record, one event.
type TransactionCompleted struct {
	IdempotencyKey string                 `json:"idempotency_key"`
	UserID         string                 `json:"user_id"`
	Amount         decimal.Decimal        `json:"amount"`
	Type           entity.TransactionType `json:"type"`
	OccurredAt     time.Time              `json:"occurred_at"`
}

// Publisher publishes completed-transaction events. Publish failures must not
// fail the transaction that triggered them.
type Publisher interface {
	PublishTransactionCompleted(ctx context.Context, evt TransactionCompleted) error
	Close() error
}
