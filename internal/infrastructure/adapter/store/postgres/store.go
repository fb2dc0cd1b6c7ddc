package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
	errs "github.com/devshark/function-dynamodb-task/internal/domain/error"
	coreport "github.com/devshark/function-dynamodb-task/internal/domain/port/core"
	storeport "github.com/devshark/function-dynamodb-task/internal/domain/port/store"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// Store implements store.TransactionalStore on postgres via GORM. The guarded
// balance update is a conditional UPDATE detected through RowsAffected; the
// ledger insert relies on the primary-key constraint. Both run inside one
// database transaction, so a rejected guard rolls back everything.
type Store struct {
	db         *gorm.DB
	logger     coreport.Logger
	classifier *ErrorClassifier
}

// NewStore creates a postgres-backed transactional store
func NewStore(db *gorm.DB, logger coreport.Logger) *Store {
	return &Store{
		db:         db,
		logger:     logger,
		classifier: NewErrorClassifier(),
	}
}

// GetUser retrieves a user by ID, returning nil when absent
func (s *Store) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	var userModel model.User
	result := s.db.WithContext(ctx).First(&userModel, "id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, s.wrapStoreError("getting user", result.Error)
	}
	return userModel.ToEntity(), nil
}

// GetTransaction retrieves a ledger record by idempotency key, returning nil
// when absent
func (s *Store) GetTransaction(ctx context.Context, idempotencyKey string) (*entity.LedgerRecord, error) {
	var recordModel model.LedgerRecord
	result := s.db.WithContext(ctx).First(&recordModel, "idempotency_key = ?", idempotencyKey)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, s.wrapStoreError("getting transaction", result.Error)
	}
	return recordModel.ToEntity(), nil
}

// TransactWrite applies the balance update and the ledger insert in one
// database transaction. Guard violations surface as *TransactCanceledError
// with per-operation reasons; returning the error from the transaction
// callback rolls the whole write back.
func (s *Store) TransactWrite(ctx context.Context, record *entity.LedgerRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.applyBalanceOp(tx, record); err != nil {
			return err
		}
		return s.applyLedgerInsert(tx, record)
	})
}

// applyBalanceOp runs operation 0: the user balance update
func (s *Store) applyBalanceOp(tx *gorm.DB, record *entity.LedgerRecord) error {
	if record.IsCredit() {
		result := tx.Model(&model.User{}).
			Where("id = ?", record.UserID).
			Updates(map[string]any{
				"balance":    gorm.Expr("COALESCE(balance, 0) + ?", record.Amount),
				"updated_at": record.CreatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// The row vanished between the caller's existence check and the
			// write. Not a guard; reported as a plain store failure.
			return fmt.Errorf("%w: %s", errs.ErrUserNotFound, record.UserID)
		}
		return nil
	}

	result := tx.Model(&model.User{}).
		Where("id = ? AND balance IS NOT NULL AND balance >= ?", record.UserID, record.Amount).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - ?", record.Amount),
			"updated_at": record.CreatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &storeport.TransactCanceledError{
			Reasons: [2]storeport.CancellationReason{
				{Code: storeport.ReasonConditionFailed, Message: "balance missing or below requested amount"},
				{Code: storeport.ReasonNone},
			},
		}
	}
	return nil
}

// applyLedgerInsert runs operation 1: the guarded ledger insert
func (s *Store) applyLedgerInsert(tx *gorm.DB, record *entity.LedgerRecord) error {
	recordModel := model.LedgerRecordFromEntity(record)
	if err := tx.Create(&recordModel).Error; err != nil {
		if s.classifier.IsDuplicateKeyError(err) {
			return &storeport.TransactCanceledError{
				Reasons: [2]storeport.CancellationReason{
					{Code: storeport.ReasonNone},
					{
						Code:           storeport.ReasonConditionFailed,
						ConflictingKey: record.IdempotencyKey,
					},
				},
				Err: err,
			}
		}
		return err
	}
	return nil
}

func (s *Store) wrapStoreError(operation string, err error) error {
	s.logger.Error("Database error", map[string]any{
		"operation": operation,
		"error":     err.Error(),
	})
	if s.classifier.IsConnectionError(err) {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return err
}

// Compile-time check that Store satisfies the transactional store port
var _ storeport.TransactionalStore = (*Store)(nil)
