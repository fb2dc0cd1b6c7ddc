package store

import (
	"context"
	"fmt"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
)

// OpIndex identifies one operation inside the atomic two-operation write.
type OpIndex int

const (
	// OpBalance is the user balance update (operation 0)
	OpBalance OpIndex = iota
	// OpLedgerInsert is the guarded ledger insert (operation 1)
	OpLedgerInsert
)

// CancellationCode classifies why a single operation was rejected
type CancellationCode string

const (
	// ReasonNone means the operation's guard held
	ReasonNone CancellationCode = "None"
	// ReasonConditionFailed means the operation's guard was violated
	ReasonConditionFailed CancellationCode = "ConditionalCheckFailed"
)

// CancellationReason describes the outcome of one operation in a rejected
// transact. For the ledger insert, ConflictingKey carries the key of the
// record that blocked the insert when the store can report it.
type CancellationReason struct {
	Code           CancellationCode
	ConflictingKey string
	Message        string
}

// ConditionFailed reports whether this operation's guard was violated
func (r CancellationReason) ConditionFailed() bool {
	return r.Code == ReasonConditionFailed
}

// TransactCanceledError is returned by TransactWrite when the store rejected
// the atomic write because one or more guards failed. Reasons is indexed by
// OpIndex. Nothing was written.
type TransactCanceledError struct {
	Reasons [2]CancellationReason
	Err     error
}

// Error implements the error interface
func (e *TransactCanceledError) Error() string {
	msg := fmt.Sprintf("transact write canceled: balance=%s, ledger insert=%s",
		e.Reasons[OpBalance].Code, e.Reasons[OpLedgerInsert].Code)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying store error, if any
func (e *TransactCanceledError) Unwrap() error {
	return e.Err
}

// UserStore provides point reads of user records
type UserStore interface {
	// GetUser returns the user record, or nil when no record exists.
	// A store failure is reported as an error, never as absence.
	GetUser(ctx context.Context, userID string) (*entity.User, error)
}

// LedgerStore provides point reads of ledger records
type LedgerStore interface {
	// GetTransaction returns the ledger record for the idempotency key, or nil
	// when no record exists.
	GetTransaction(ctx context.Context, idempotencyKey string) (*entity.LedgerRecord, error)
}

// TransactionalStore is the transactional key-value collaborator the ledger
// core runs against. Implementations must be safe for concurrent use; the
// handle is long-lived, process-wide infrastructure.
type TransactionalStore interface {
	UserStore
	LedgerStore

	// TransactWrite atomically applies exactly two operations derived from the
	// record, committing both or neither:
	//
	//   op 0: balance update on the user keyed by record.UserID.
	//         CREDIT sets balance = COALESCE(balance, 0) + amount.
	//         DEBIT sets balance = balance - amount, guarded by the balance
	//         attribute existing and being >= amount.
	//   op 1: insert of the record keyed by record.IdempotencyKey, guarded by
	//         no record existing for that key.
	//
	// A guard violation rejects the whole write and surfaces as a
	// *TransactCanceledError. Any other failure is returned as-is.
	TransactWrite(ctx context.Context, record *entity.LedgerRecord) error
}
