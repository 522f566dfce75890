// Package stock holds the rules for manually valued holdings (shares, funds).
package stock

import (
	"fmt"
	"strings"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/money"
	"github.com/shopspring/decimal"
)

// MaxNameLength bounds a holding name.
const MaxNameLength = 100

// NormalizeName trims name and rejects empty or overlong names.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: holding name is required", domain.ErrInvalidInput)
	}
	if len(name) > MaxNameLength {
		return "", fmt.Errorf("%w: holding name longer than %d characters", domain.ErrInvalidInput, MaxNameLength)
	}
	return name, nil
}

// ValidateValue accepts zero (a written-off holding) up to money.MaxAmount,
// in whole cents.
func ValidateValue(v decimal.Decimal) error {
	switch {
	case v.IsNegative():
		return fmt.Errorf("%w: holding value must not be negative, got %s", domain.ErrInvalidAmount, v)
	case !money.HasValidScale(v):
		return fmt.Errorf("%w: holding value %s has more than %d decimal places", domain.ErrInvalidAmount, v, money.Scale)
	case v.GreaterThan(money.MaxAmount):
		return fmt.Errorf("%w: holding value %s exceeds %s", domain.ErrInvalidAmount, v, money.MaxAmount)
	}
	return nil
}
