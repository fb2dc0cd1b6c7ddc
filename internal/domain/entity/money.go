package entity

import (
	"fmt"
	"strings"

	errs "github.com/devshark/function-dynamodb-task/internal/domain/error"
	"github.com/shopspring/decimal"
)

// MaxDecimalPlaces defines the maximum number of fractional digits allowed for
// money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a caller-supplied amount string and converts it to a
// decimal. Amounts travel as strings at every interface boundary to avoid
// floating-point drift; arithmetic and comparisons happen on the decimal.
//
// Rejection rule: after trimming whitespace the string must parse as a plain
// decimal number, be strictly positive, and carry at most two fractional
// digits. Scientific notation is rejected.
func ParseAmount(amount string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	// decimal.NewFromString accepts exponent notation like "1e2"; the wire
	// format does not.
	if strings.ContainsAny(trimmed, "eE") {
		return decimal.Zero, fmt.Errorf("%w: exponent notation not allowed", errs.ErrInvalidAmount)
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	if value.Exponent() < -MaxDecimalPlaces {
		return decimal.Zero, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	if !value.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", errs.ErrInvalidAmount)
	}

	return value, nil
}

// FormatAmount renders a decimal amount with exactly two decimal places
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MaxDecimalPlaces)
}

// FormatBalance renders a balance in the caller-facing "<amount> <currency>"
// format, e.g. "10.00 USD"
func FormatBalance(amount decimal.Decimal, currency string) string {
	return FormatAmount(amount) + " " + currency
}
