package balance

import (
	"context"
	"errors"
	"testing"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
	errs "github.com/devshark/function-dynamodb-task/internal/domain/error"
	"github.com/devshark/function-dynamodb-task/mocks/port/core"
	mockstore "github.com/devshark/function-dynamodb-task/mocks/port/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newQuietLogger() *core.MockLogger {
	logger := new(core.MockLogger)
	logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	logger.On("Error", mock.Anything, mock.Anything).Maybe()
	return logger
}

func newReader(store *mockstore.MockTransactionalStore) *Reader {
	return NewReader(store, decimal.Zero, "USD", newQuietLogger())
}

func TestReader_GetUserBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("should format a stored balance with its currency", func(t *testing.T) {
		balance := decimal.RequireFromString("123.45")
		store := new(mockstore.MockTransactionalStore)
		store.On("GetUser", ctx, "42").Return(&entity.User{
			ID:       "42",
			Balance:  &balance,
			Currency: "EUR",
		}, nil)

		formatted, err := newReader(store).GetUserBalance(ctx, "42")

		assert.NoError(t, err)
		assert.Equal(t, "123.45 EUR", formatted)
	})

	t.Run("should fall back to the default currency", func(t *testing.T) {
		balance := decimal.RequireFromString("10.00")
		store := new(mockstore.MockTransactionalStore)
		store.On("GetUser", ctx, "42").Return(&entity.User{
			ID:      "42",
			Balance: &balance,
		}, nil)

		formatted, err := newReader(store).GetUserBalance(ctx, "42")

		assert.NoError(t, err)
		assert.Equal(t, "10.00 USD", formatted)
	})

	t.Run("should report the default amount for an unfunded user", func(t *testing.T) {
		store := new(mockstore.MockTransactionalStore)
		store.On("GetUser", ctx, "42").Return(&entity.User{ID: "42"}, nil)

		formatted, err := newReader(store).GetUserBalance(ctx, "42")

		assert.NoError(t, err)
		assert.Equal(t, "0.00 USD", formatted)
	})

	t.Run("should reject an empty user ID without a store call", func(t *testing.T) {
		store := new(mockstore.MockTransactionalStore)

		formatted, err := newReader(store).GetUserBalance(ctx, "")

		assert.Empty(t, formatted)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		store.AssertNotCalled(t, "GetUser")
	})

	t.Run("should return user not found for an unknown user", func(t *testing.T) {
		store := new(mockstore.MockTransactionalStore)
		store.On("GetUser", ctx, "999").Return(nil, nil)

		formatted, err := newReader(store).GetUserBalance(ctx, "999")

		assert.Empty(t, formatted)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("should propagate store failures unchanged", func(t *testing.T) {
		store := new(mockstore.MockTransactionalStore)
		storeErr := errors.New("connection reset")
		store.On("GetUser", ctx, "42").Return(nil, storeErr)

		formatted, err := newReader(store).GetUserBalance(ctx, "42")

		assert.Empty(t, formatted)
		assert.Equal(t, storeErr, err)
	})
}
