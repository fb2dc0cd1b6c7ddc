package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance    = 4001
	CodeInvalidAmount          = 4002
	CodeInvalidUserID          = 4003
	CodeDuplicateTransaction   = 4004
	CodeInvalidIdempotencyKey  = 4005
	CodeInvalidTransactionType = 4006
	CodeUserNotFound           = 4040

	// 5xxx - Server errors
	CodeInternalServer    = 5000
	CodeTransactionFailed = 5001
)

// Base error types
var (
	// ErrInvalidUserID is returned when the user identifier is empty
	ErrInvalidUserID = errors.New("user ID cannot be empty")

	// ErrUserNotFound is returned when the referenced user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidIdempotencyKey is returned when the idempotency key is empty
	ErrInvalidIdempotencyKey = errors.New("idempotency key cannot be empty")

	// ErrInvalidAmount is returned when the amount is empty, non-numeric or not positive
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidTransactionType is returned when the type is not CREDIT or DEBIT
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInsufficientBalance is returned when a debit would drive the balance negative
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrDuplicateTransaction marks an idempotency-key collision. Callers never
	// see it as a failure: replays resolve to a silent no-op success.
	ErrDuplicateTransaction = errors.New("transaction with this idempotency key already exists")

	// ErrTransactionNotFound is returned when no ledger record exists for a key
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionFailed is returned when the atomic write was rejected for a
	// reason the conflict-resolution logic could not reinterpret
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrDatabaseConnection is returned when the store cannot be reached
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrDuplicateTransaction):
		return CodeDuplicateTransaction
	case errors.Is(err, ErrInvalidIdempotencyKey):
		return CodeInvalidIdempotencyKey
	case errors.Is(err, ErrInvalidTransactionType):
		return CodeInvalidTransactionType
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionFailed):
		return CodeTransactionFailed
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	UserID    string
	Requested string
	Available string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	if e.Available == "" {
		return fmt.Sprintf("insufficient balance for user %s: required %s", e.UserID, e.Requested)
	}
	return fmt.Sprintf("insufficient balance for user %s: required %s, available %s",
		e.UserID, e.Requested, e.Available)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_balance",
		"user_id":    e.UserID,
		"requested":  e.Requested,
		"available":  e.Available,
		"error_code": CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID, requested, available string) error {
	return &InsufficientBalanceError{
		UserID:    userID,
		Requested: requested,
		Available: available,
	}
}

// TransactionError represents a failure while executing the atomic write
type TransactionError struct {
	IdempotencyKey string
	UserID         string
	Type           string
	Amount         string
	Reason         string
	Err            error
}

// Error implements the error interface for TransactionError
func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction error for key %s (user: %s, amount: %s): %s - %v",
		e.IdempotencyKey, e.UserID, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransactionError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "transaction_error",
		"idempotency_key": e.IdempotencyKey,
		"user_id":         e.UserID,
		"type":            e.Type,
		"amount":          e.Amount,
		"reason":          e.Reason,
		"error":           e.Err.Error(),
		"error_code":      ErrorCode(e.Err),
	}
}

// NewTransactionError creates a detailed transaction error
func NewTransactionError(idempotencyKey, userID, txType, amount, reason string, err error) error {
	return &TransactionError{
		IdempotencyKey: idempotencyKey,
		UserID:         userID,
		Type:           txType,
		Amount:         amount,
		Reason:         reason,
		Err:            err,
	}
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsValidationError reports whether the error was produced by request
// validation, before any store call
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidIdempotencyKey) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidTransactionType)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}
