// Package account holds the rules for cash and bank accounts.
package account

import (
	"fmt"
	"strings"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/money"
	"github.com/shopspring/decimal"
)

// Kind classifies an account.
type Kind string

const (
	KindCash Kind = "cash"
	KindBank Kind = "bank"
)

// ParseKind validates s as an account kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCash, KindBank:
		return k, nil
	default:
		return "", fmt.Errorf("%w: account kind %q", domain.ErrInvalidKind, s)
	}
}

// Rebase returns the current balance after the initial balance of an account
// moves from oldInitial to newInitial. The difference is carried over so the
// effects of existing transactions are preserved.
func Rebase(current, oldInitial, newInitial decimal.Decimal) decimal.Decimal {
	return current.Add(newInitial.Sub(oldInitial))
}

// ValidateInitialBalance checks that an opening balance fits the stored
// precision and range. Negative opening balances are allowed (overdrawn bank
// accounts).
func ValidateInitialBalance(d decimal.Decimal) error {
	if !money.HasValidScale(d) {
		return fmt.Errorf("%w: initial balance %s", domain.ErrInvalidAmount, d)
	}
	if !money.WithinLimit(d, money.MaxAmount) {
		return fmt.Errorf("%w: initial balance %s exceeds %s", domain.ErrInvalidAmount, d, money.MaxAmount)
	}
	return nil
}

// NormalizeCurrency upper-cases code and falls back to def when empty.
func NormalizeCurrency(code, def string) (money.Code, error) {
	c := money.Code(strings.ToUpper(strings.TrimSpace(code)))
	if c == "" {
		c = money.Code(def)
	}
	if !c.IsValid() {
		return "", fmt.Errorf("%w: currency %q", domain.ErrInvalidKind, code)
	}
	return c, nil
}
