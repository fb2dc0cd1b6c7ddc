package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"insufficient balance", ErrInsufficientBalance, CodeInsufficientBalance},
		{"invalid amount", ErrInvalidAmount, CodeInvalidAmount},
		{"invalid user ID", ErrInvalidUserID, CodeInvalidUserID},
		{"duplicate transaction", ErrDuplicateTransaction, CodeDuplicateTransaction},
		{"invalid idempotency key", ErrInvalidIdempotencyKey, CodeInvalidIdempotencyKey},
		{"invalid transaction type", ErrInvalidTransactionType, CodeInvalidTransactionType},
		{"user not found", ErrUserNotFound, CodeUserNotFound},
		{"transaction failed", ErrTransactionFailed, CodeTransactionFailed},
		{"unknown error", errors.New("something else"), CodeInternalServer},
		{"wrapped error keeps its code", fmt.Errorf("context: %w", ErrInvalidAmount), CodeInvalidAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCode(tc.err))
		})
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	t.Run("should match the sentinel via errors.Is", func(t *testing.T) {
		err := NewInsufficientBalanceError("42", "10.00", "5.00")

		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.True(t, IsInsufficientBalanceError(err))
	})

	t.Run("should include available balance when known", func(t *testing.T) {
		err := NewInsufficientBalanceError("42", "10.00", "5.00")
		assert.Equal(t, "insufficient balance for user 42: required 10.00, available 5.00", err.Error())
	})

	t.Run("should omit available balance when unknown", func(t *testing.T) {
		err := NewInsufficientBalanceError("42", "10.00", "")
		assert.Equal(t, "insufficient balance for user 42: required 10.00", err.Error())
	})

	t.Run("should expose structured log fields", func(t *testing.T) {
		err := NewInsufficientBalanceError("42", "10.00", "5.00")

		var detailed *InsufficientBalanceError
		assert.True(t, errors.As(err, &detailed))
		fields := detailed.LogFields()
		assert.Equal(t, "42", fields["user_id"])
		assert.Equal(t, CodeInsufficientBalance, fields["error_code"])
	})
}

func TestTransactionError(t *testing.T) {
	t.Run("should unwrap to the underlying error", func(t *testing.T) {
		underlying := fmt.Errorf("%w: guard rejected", ErrTransactionFailed)
		err := NewTransactionError("key-1", "42", "CREDIT", "10.00", "insert rejected", underlying)

		assert.ErrorIs(t, err, ErrTransactionFailed)
		assert.Equal(t, CodeTransactionFailed, ErrorCode(err))
	})

	t.Run("should describe the failed transaction", func(t *testing.T) {
		err := NewTransactionError("key-1", "42", "DEBIT", "10.00", "reason", errors.New("boom"))
		assert.Contains(t, err.Error(), "key-1")
		assert.Contains(t, err.Error(), "42")
		assert.Contains(t, err.Error(), "reason")
	})
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrInvalidUserID))
	assert.True(t, IsValidationError(ErrInvalidIdempotencyKey))
	assert.True(t, IsValidationError(ErrInvalidAmount))
	assert.True(t, IsValidationError(ErrInvalidTransactionType))
	assert.False(t, IsValidationError(ErrUserNotFound))
	assert.False(t, IsValidationError(ErrInsufficientBalance))
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrUserNotFound))
	assert.True(t, IsNotFoundError(ErrTransactionNotFound))
	assert.False(t, IsNotFoundError(ErrInvalidAmount))
}
