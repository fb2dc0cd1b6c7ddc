package entity

import (
	"time"

	errs "github.com/devshark/function-dynamodb-task/internal/domain/error"
	coreport "github.com/devshark/function-dynamodb-task/internal/domain/port/core"
	"github.com/shopspring/decimal"
)

// User represents an account holder. Users are created externally with no
// balance; the first credit establishes one. A stored balance is never
// negative.
type User struct {
	ID        string
	Balance   *decimal.Decimal // nil means the user has never been funded
	Currency  string           // empty means the process-wide default applies
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a new unfunded user with the given ID
func NewUser(id string, timeProvider coreport.TimeProvider) (*User, error) {
	if id == "" {
		return nil, errs.ErrInvalidUserID
	}

	now := timeProvider.Now()
	return &User{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// HasBalance reports whether the user has ever been funded
func (u *User) HasBalance() bool {
	return u.Balance != nil
}

// CanDebit reports whether the stored balance covers the given amount.
// An absent balance covers nothing.
func (u *User) CanDebit(amount decimal.Decimal) bool {
	return u.Balance != nil && u.Balance.GreaterThanOrEqual(amount)
}

// CurrencyOr returns the user's currency, or fallback when none is stored
func (u *User) CurrencyOr(fallback string) string {
	if u.Currency == "" {
		return fallback
	}
	return u.Currency
}
