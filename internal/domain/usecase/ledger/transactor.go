package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
	errs "github.com/devshark/function-dynamodb-task/internal/domain/error"
	coreport "github.com/devshark/function-dynamodb-task/internal/domain/port/core"
	storeport "github.com/devshark/function-dynamodb-task/internal/domain/port/store"
)

// Transactor executes the atomic two-write transaction and interprets the
// store's rejection reasons. It holds no in-process locks and no mutable
// state; concurrent callers serialize only inside the store.
type Transactor struct {
	store        storeport.TransactionalStore
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewTransactor creates a new Transactor bound to its store
func NewTransactor(
	store storeport.TransactionalStore,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Transactor {
	return &Transactor{
		store:        store,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CheckExistingTransaction performs a point read of the ledger by idempotency
// key. It returns nil when no record exists. No side effects.
func (t *Transactor) CheckExistingTransaction(ctx context.Context, idempotencyKey string) (*entity.LedgerRecord, error) {
	record, err := t.store.GetTransaction(ctx, idempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing transaction: %w", err)
	}
	return record, nil
}

// Transact applies the request as a single atomic write: the balance update
// and the guarded ledger insert commit together or not at all. It returns the
// record it wrote, or nil when the call resolved into an idempotent no-op.
//
// The write is never retried here. A failed guard is terminal for this call;
// the caller may safely re-invoke with the same idempotency key.
func (t *Transactor) Transact(ctx context.Context, req TransactRequest) (*entity.LedgerRecord, error) {
	record, err := entity.NewLedgerRecord(req.IdempotencyKey, req.UserID, req.Amount, req.Type, t.timeProvider)
	if err != nil {
		return nil, err
	}

	err = t.store.TransactWrite(ctx, record)
	if err == nil {
		t.logger.Info("Transaction applied", map[string]any{
			"idempotency_key": record.IdempotencyKey,
			"user_id":         record.UserID,
			"amount":          entity.FormatAmount(record.Amount),
			"type":            string(record.Type),
		})
		return record, nil
	}

	var canceled *storeport.TransactCanceledError
	if !errors.As(err, &canceled) {
		// Not a guard rejection; preserve full diagnostic fidelity
		return nil, err
	}

	return nil, t.resolveConflict(ctx, record, canceled)
}

// resolveConflict interprets a rejected atomic write. Exactly three outcomes
// exist: a debit bounced off the balance guard, a replay raced us on the
// ledger insert, or the rejection is something we don't reinterpret.
func (t *Transactor) resolveConflict(ctx context.Context, record *entity.LedgerRecord, canceled *storeport.TransactCanceledError) error {
	if record.IsDebit() && canceled.Reasons[storeport.OpBalance].ConditionFailed() {
		t.logger.Warn("Debit rejected: insufficient balance", map[string]any{
			"idempotency_key": record.IdempotencyKey,
			"user_id":         record.UserID,
			"amount":          entity.FormatAmount(record.Amount),
		})
		return errs.NewInsufficientBalanceError(record.UserID, entity.FormatAmount(record.Amount), canceled.Reasons[storeport.OpBalance].Message)
	}

	insertReason := canceled.Reasons[storeport.OpLedgerInsert]
	if insertReason.ConditionFailed() && insertReason.ConflictingKey == record.IdempotencyKey {
		// Either the caller is retrying or a concurrent duplicate won the
		// race. The re-read closes the check-then-write window: if the record
		// is there now, this call already succeeded once.
		existing, err := t.CheckExistingTransaction(ctx, record.IdempotencyKey)
		if err != nil {
			return err
		}
		if existing != nil {
			t.logger.Info("Idempotent replay detected after write conflict", map[string]any{
				"idempotency_key": record.IdempotencyKey,
				"user_id":         record.UserID,
			})
			return nil
		}

		// The insert guard failed but the record is gone on re-read. A narrow
		// race window; surfaced as terminal rather than retried.
		return errs.NewTransactionError(
			record.IdempotencyKey,
			record.UserID,
			string(record.Type),
			entity.FormatAmount(record.Amount),
			"ledger insert rejected but no record found on re-read",
			fmt.Errorf("%w: %s", errs.ErrTransactionFailed, canceled.Error()),
		)
	}

	// Any other rejection pattern propagates as-is
	return canceled
}
