package balance

import (
	"context"

	"github.com/devshark/function-dynamodb-task/internal/domain/entity"
	errs "github.com/devshark/function-dynamodb-task/internal/domain/error"
	coreport "github.com/devshark/function-dynamodb-task/internal/domain/port/core"
	storeport "github.com/devshark/function-dynamodb-task/internal/domain/port/store"
	"github.com/shopspring/decimal"
)

// Reader reports user balances. It is strictly read-only: a user that has
// never been funded gets the process-wide default reported back, but nothing
// is written to backfill it.
type Reader struct {
	users           storeport.UserStore
	defaultAmount   decimal.Decimal
	defaultCurrency string
	logger          coreport.Logger
}

// NewReader creates a balance reader with the process-wide defaults used for
// unfunded users
func NewReader(
	users storeport.UserStore,
	defaultAmount decimal.Decimal,
	defaultCurrency string,
	logger coreport.Logger,
) *Reader {
	return &Reader{
		users:           users,
		defaultAmount:   defaultAmount,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// GetUserItem performs the point read of a user record. It returns nil when
// the user does not exist; store failures propagate unchanged.
func (r *Reader) GetUserItem(ctx context.Context, userID string) (*entity.User, error) {
	return r.users.GetUser(ctx, userID)
}

// GetUserBalance returns the user's balance in the "<amount> <currency>"
// format. Missing balance or currency attributes fall back to the defaults.
func (r *Reader) GetUserBalance(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", errs.ErrInvalidUserID
	}

	user, err := r.GetUserItem(ctx, userID)
	if err != nil {
		r.logger.Error("Failed to get user", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return "", err
	}
	if user == nil {
		return "", errs.ErrUserNotFound
	}

	if !user.HasBalance() {
		return entity.FormatBalance(r.defaultAmount, r.defaultCurrency), nil
	}

	return entity.FormatBalance(*user.Balance, user.CurrencyOr(r.defaultCurrency)), nil
}
