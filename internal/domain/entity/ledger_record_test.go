package entity

import (
	"testing"
	"time"

	errs "github.com/devshark/function-dynamodb-task/internal/domain/error"
	"github.com/devshark/function-dynamodb-task/mocks/port/core"
	"github.com/stretchr/testify/assert"
)

func TestNewLedgerRecord(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	newTimeProvider := func() *core.MockTimeProvider {
		tp := new(core.MockTimeProvider)
		tp.On("Now").Return(fixedTime)
		return tp
	}

	t.Run("should create a credit record", func(t *testing.T) {
		record, err := NewLedgerRecord("key-1", "42", "10.00", "CREDIT", newTimeProvider())

		assert.NoError(t, err)
		assert.NotNil(t, record)
		assert.Equal(t, "key-1", record.IdempotencyKey)
		assert.Equal(t, "42", record.UserID)
		assert.Equal(t, "10.00", FormatAmount(record.Amount))
		assert.Equal(t, TypeCredit, record.Type)
		assert.Equal(t, fixedTime, record.CreatedAt)
		assert.True(t, record.IsCredit())
		assert.False(t, record.IsDebit())
	})

	t.Run("should create a debit record", func(t *testing.T) {
		record, err := NewLedgerRecord("key-2", "42", "5.50", "DEBIT", newTimeProvider())

		assert.NoError(t, err)
		assert.True(t, record.IsDebit())
		assert.Equal(t, TypeDebit, record.Type)
	})

	t.Run("should reject empty user ID", func(t *testing.T) {
		record, err := NewLedgerRecord("key-1", "", "10.00", "CREDIT", newTimeProvider())

		assert.Nil(t, record)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("should reject empty idempotency key", func(t *testing.T) {
		record, err := NewLedgerRecord("", "42", "10.00", "CREDIT", newTimeProvider())

		assert.Nil(t, record)
		assert.ErrorIs(t, err, errs.ErrInvalidIdempotencyKey)
	})

	t.Run("should reject invalid amount", func(t *testing.T) {
		record, err := NewLedgerRecord("key-1", "42", "-10.00", "CREDIT", newTimeProvider())

		assert.Nil(t, record)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("should reject unknown transaction type", func(t *testing.T) {
		record, err := NewLedgerRecord("key-1", "42", "10.00", "TRANSFER", newTimeProvider())

		assert.Nil(t, record)
		assert.ErrorIs(t, err, errs.ErrInvalidTransactionType)
	})

	t.Run("should reject lowercase transaction type", func(t *testing.T) {
		record, err := NewLedgerRecord("key-1", "42", "10.00", "credit", newTimeProvider())

		assert.Nil(t, record)
		assert.ErrorIs(t, err, errs.ErrInvalidTransactionType)
	})
}

func TestIsValidTransactionType(t *testing.T) {
	assert.True(t, IsValidTransactionType("CREDIT"))
	assert.True(t, IsValidTransactionType("DEBIT"))
	assert.False(t, IsValidTransactionType("credit"))
	assert.False(t, IsValidTransactionType(""))
	assert.False(t, IsValidTransactionType("REFUND"))
}
