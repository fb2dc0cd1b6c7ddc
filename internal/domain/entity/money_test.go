package entity

import (
	"testing"

	errs "github.com/devshark/function-dynamodb-task/internal/domain/error"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	t.Run("should accept valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected string
		}{
			{"10", "10.00"},
			{"10.5", "10.50"},
			{"10.55", "10.55"},
			{"0.01", "0.01"},
			{"  25.00  ", "25.00"},
			{"1000000", "1000000.00"},
		}

		for _, tc := range testCases {
			value, err := ParseAmount(tc.input)
			assert.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.expected, FormatAmount(value), "input %q", tc.input)
		}
	})

	t.Run("should reject invalid amounts", func(t *testing.T) {
		testCases := []struct {
			name  string
			input string
		}{
			{"empty string", ""},
			{"whitespace only", "   "},
			{"non-numeric", "abc"},
			{"mixed alphanumeric", "10.5x"},
			{"zero", "0"},
			{"zero with decimals", "0.00"},
			{"negative", "-10.00"},
			{"too many decimal places", "10.555"},
			{"exponent notation", "1e2"},
			{"uppercase exponent", "1E2"},
			{"multiple dots", "10.5.5"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := ParseAmount(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidAmount)
			})
		}
	})
}

func TestFormatAmount(t *testing.T) {
	t.Run("should always render two decimal places", func(t *testing.T) {
		assert.Equal(t, "10.00", FormatAmount(decimal.NewFromInt(10)))
		assert.Equal(t, "10.50", FormatAmount(decimal.RequireFromString("10.5")))
		assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
	})
}

func TestFormatBalance(t *testing.T) {
	t.Run("should render amount and currency", func(t *testing.T) {
		assert.Equal(t, "10.00 USD", FormatBalance(decimal.NewFromInt(10), "USD"))
		assert.Equal(t, "0.00 EUR", FormatBalance(decimal.Zero, "EUR"))
	})
}
