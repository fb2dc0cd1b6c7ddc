package ledger

import (
	"fmt"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
	errs "github.com/devshark/function-dynamodb-task/internal/domain/error"
)

// TransactRequest is a request to apply one transaction. Amount is the
// positive magnitude as a string; direction is carried by Type.
type TransactRequest struct {
	IdempotencyKey string
	UserID         string
	Amount         string
	Type           string
}

// Validator provides request validation for transactions
type Validator struct{}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRequest checks the request shape before any I/O happens. Checks run
// in a fixed order and the first violation wins: user ID, idempotency key,
// amount, type.
func (v *Validator) ValidateRequest(req TransactRequest) error {
	// An empty user ID necessarily references no user
	if req.UserID == "" {
		return errs.ErrUserNotFound
	}

	if req.IdempotencyKey == "" {
		return errs.ErrInvalidIdempotencyKey
	}

	if _, err := entity.ParseAmount(req.Amount); err != nil {
		return err
	}

	if !entity.IsValidTransactionType(req.Type) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidTransactionType, req.Type)
	}

	return nil
}
