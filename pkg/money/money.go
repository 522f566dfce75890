// Package money holds the decimal helpers shared by the ledger and the zakat calculator.
//
// Amounts travel through the services as decimal.Decimal and are stored as signed
// minor units (cents), so storage-side balance arithmetic stays in exact integers.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits kept for stored amounts.
const Scale = 2

var (
	// MaxAmount bounds a single figure: a transaction amount, an initial
	// balance or a zakat input.
	MaxAmount = decimal.RequireFromString("9999999999999.99")
	// MaxBalance bounds a running account balance and a zakat total.
	// Adding MaxAmount to it still fits in int64 minor units.
	MaxBalance = decimal.RequireFromString("999999999999999.99")
)

// ToMinor converts d to minor units, rounding half away from zero. Values
// that do not fit in an int64 fail with ErrOutOfRange.
func ToMinor(d decimal.Decimal) (int64, error) {
	minor := d.Shift(Scale).Round(0)
	if !minor.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, d)
	}
	return minor.IntPart(), nil
}

// WithinLimit reports whether |d| <= limit.
func WithinLimit(d, limit decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(limit)
}

// FromMinor converts minor units back to a decimal amount.
func FromMinor(v int64) decimal.Decimal {
	return decimal.New(v, -Scale)
}

// HasValidScale reports whether d has no more than Scale fractional digits.
func HasValidScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(Scale))
}

// Round2 rounds d to two places, half away from zero. Only apply it at the
// presentation step; intermediate sums keep full precision.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Parse parses s into a decimal amount that fits Scale.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !HasValidScale(d) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrTooManyDecimals, s)
	}
	return d, nil
}

// OrZero dereferences p, treating nil as zero.
func OrZero(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}
