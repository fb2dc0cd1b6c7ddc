package ledger

import (
	"context"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
	errs "github.com/devshark/function-dynamodb-task/internal/domain/error"
	coreport "github.com/devshark/function-dynamodb-task/internal/domain/port/core"
	eventport "github.com/devshark/function-dynamodb-task/internal/domain/port/event"
	storeport "github.com/devshark/function-dynamodb-task/internal/domain/port/store"
)

// Service is the externally documented transaction operation
type Service interface {
	Transact(ctx context.Context, req TransactRequest) error
}

// Orchestrator composes validation, the user existence check, the idempotency
// pre-check and the atomic write into the documented Transact operation.
type Orchestrator struct {
	validator  *Validator
	transactor *Transactor
	users      storeport.UserStore
	publisher  eventport.Publisher
	logger     coreport.Logger
}

// NewOrchestrator creates a new Orchestrator from its components
func NewOrchestrator(
	validator *Validator,
	transactor *Transactor,
	users storeport.UserStore,
	publisher eventport.Publisher,
	logger coreport.Logger,
) *Orchestrator {
	return &Orchestrator{
		validator:  validator,
		transactor: transactor,
		users:      users,
		publisher:  publisher,
		logger:     logger,
	}
}

// NewService builds the transaction service with all its components bound to
// the given store
func NewService(
	store storeport.TransactionalStore,
	publisher eventport.Publisher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) Service {
	return NewOrchestrator(
		NewValidator(),
		NewTransactor(store, timeProvider, logger),
		store,
		publisher,
		logger,
	)
}

// Transact runs the full transaction flow:
//  1. Validate the request shape; violations never reach the store.
//  2. Check the user exists.
//  3. Idempotency pre-check: a known key returns success with no further
//     action. This fast path and the transactor's post-conflict re-read
//     enforce the same invariant from different angles.
//  4. Apply the atomic write.
func (o *Orchestrator) Transact(ctx context.Context, req TransactRequest) error {
	if err := o.validator.ValidateRequest(req); err != nil {
		return err
	}

	user, err := o.users.GetUser(ctx, req.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return errs.ErrUserNotFound
	}

	existing, err := o.transactor.CheckExistingTransaction(ctx, req.IdempotencyKey)
	if err != nil {
		return err
	}
	if existing != nil {
		o.logger.Info("Duplicate transaction ignored", map[string]any{
			"idempotency_key": req.IdempotencyKey,
			"user_id":         req.UserID,
		})
		return nil
	}

	record, err := o.transactor.Transact(ctx, req)
	if err != nil {
		return err
	}

	// record is nil when the call resolved into an idempotent no-op; the
	// caller that actually performed the write emits the event.
	if record != nil {
		o.publishCompleted(ctx, record)
	}

	return nil
}

// publishCompleted emits the completed-transaction event. Failures are logged,
// never surfaced: the ledger write already committed.
func (o *Orchestrator) publishCompleted(ctx context.Context, record *entity.LedgerRecord) {
	if o.publisher == nil {
		return
	}

	evt := eventport.TransactionCompleted{
		IdempotencyKey: record.IdempotencyKey,
		UserID:         record.UserID,
		Amount:         record.Amount,
		Type:           record.Type,
		OccurredAt:     record.CreatedAt,
	}

	if err := o.publisher.PublishTransactionCompleted(ctx, evt); err != nil {
		o.logger.Warn("Failed to publish transaction completed event", map[string]any{
			"idempotency_key": record.IdempotencyKey,
			"error":           err.Error(),
		})
	}
}
