package entity

import (
	"fmt"
	"time"

	errs "github.com/devshark/function-dynamodb-task/internal/domain/error"
	coreport "github.com/devshark/function-dynamodb-task/internal/domain/port/core"
	"github.com/shopspring/decimal"
)

// TransactionType carries the direction of a transaction. The amount is always
// a positive magnitude; direction lives here, not in the sign.
type TransactionType string

// Transaction types
const (
	TypeCredit TransactionType = "CREDIT"
	TypeDebit  TransactionType = "DEBIT"
)

// IsValidTransactionType validates if the type is one of the allowed values
func IsValidTransactionType(t string) bool {
	return t == string(TypeCredit) || t == string(TypeDebit)
}

// LedgerRecord is the append-only record of one completed transaction, keyed
// by the caller-supplied idempotency key. At most one record ever exists per
// key; records are never mutated or deleted.
type LedgerRecord struct {
	IdempotencyKey string
	UserID         string
	Amount         decimal.Decimal
	Type           TransactionType
	CreatedAt      time.Time // assigned by the transactor, not the caller
}

// NewLedgerRecord creates a ledger record with basic validation. The creation
// timestamp comes from the time provider.
func NewLedgerRecord(
	idempotencyKey string,
	userID string,
	amount string,
	txType string,
	timeProvider coreport.TimeProvider,
) (*LedgerRecord, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if idempotencyKey == "" {
		return nil, errs.ErrInvalidIdempotencyKey
	}

	value, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	if !IsValidTransactionType(txType) {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidTransactionType, txType)
	}

	return &LedgerRecord{
		IdempotencyKey: idempotencyKey,
		UserID:         userID,
		Amount:         value,
		Type:           TransactionType(txType),
		CreatedAt:      timeProvider.Now(),
	}, nil
}

// IsCredit returns true if this record increases the user's balance
func (r *LedgerRecord) IsCredit() bool {
	return r.Type == TypeCredit
}

// IsDebit returns true if this record decreases the user's balance
func (r *LedgerRecord) IsDebit() bool {
	return r.Type == TypeDebit
}
