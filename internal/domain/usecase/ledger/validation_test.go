package ledger

import (
	"testing"

	errs "github.com/devshark/function-dynamodb-task/internal/domain/error"
	"github.com/stretchr/testify/assert"
)

func TestValidator_ValidateRequest(t *testing.T) {
	validator := NewValidator()

	validRequest := func() TransactRequest {
		return TransactRequest{
			IdempotencyKey: "key-1",
			UserID:         "42",
			Amount:         "10.00",
			Type:           "CREDIT",
		}
	}

	t.Run("should accept a valid credit request", func(t *testing.T) {
		assert.NoError(t, validator.ValidateRequest(validRequest()))
	})

	t.Run("should accept a valid debit request", func(t *testing.T) {
		req := validRequest()
		req.Type = "DEBIT"
		assert.NoError(t, validator.ValidateRequest(req))
	})

	t.Run("should treat empty user ID as user not found", func(t *testing.T) {
		req := validRequest()
		req.UserID = ""

		err := validator.ValidateRequest(req)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("should reject empty idempotency key", func(t *testing.T) {
		req := validRequest()
		req.IdempotencyKey = ""

		err := validator.ValidateRequest(req)
		assert.ErrorIs(t, err, errs.ErrInvalidIdempotencyKey)
	})

	t.Run("should reject invalid amounts", func(t *testing.T) {
		for _, amount := range []string{"", "abc", "0", "-5.00", "10.555", "1e2"} {
			req := validRequest()
			req.Amount = amount

			err := validator.ValidateRequest(req)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount, "amount %q", amount)
		}
	})

	t.Run("should reject invalid transaction types", func(t *testing.T) {
		for _, txType := range []string{"", "credit", "TRANSFER"} {
			req := validRequest()
			req.Type = txType

			err := validator.ValidateRequest(req)
			assert.ErrorIs(t, err, errs.ErrInvalidTransactionType, "type %q", txType)
		}
	})

	t.Run("should report violations in a fixed order", func(t *testing.T) {
		// Everything is wrong; the user ID check wins.
		err := validator.ValidateRequest(TransactRequest{})
		assert.ErrorIs(t, err, errs.ErrUserNotFound)

		// User ID present; the idempotency key check wins next.
		err = validator.ValidateRequest(TransactRequest{UserID: "42"})
		assert.ErrorIs(t, err, errs.ErrInvalidIdempotencyKey)

		// Amount is checked before type.
		err = validator.ValidateRequest(TransactRequest{UserID: "42", IdempotencyKey: "k", Amount: "bad", Type: "bad"})
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}
