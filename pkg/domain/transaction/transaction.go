// Package transaction defines ledger transaction kinds and the balance
// effect each kind has on the accounts it references.
package transaction

import (
	"fmt"
	"strings"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the type of a ledger transaction.
type Kind string

const (
	KindIncome   Kind = "income"
	KindExpense  Kind = "expense"
	KindTransfer Kind = "transfer"
)

// ParseKind validates s as a transaction kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindIncome, KindExpense, KindTransfer:
		return k, nil
	default:
		return "", fmt.Errorf("%w: transaction kind %q", domain.ErrInvalidKind, s)
	}
}

// UsesSource reports whether the kind debits a source account.
func (k Kind) UsesSource() bool { return k == KindExpense || k == KindTransfer }

// UsesDestination reports whether the kind credits a destination account.
func (k Kind) UsesDestination() bool { return k == KindIncome || k == KindTransfer }

// RequiresCategory reports whether a category must be supplied.
func (k Kind) RequiresCategory() bool { return k == KindIncome || k == KindExpense }

// Transaction is the part of a ledger entry that decides its balance effect.
type Transaction struct {
	Kind                 Kind
	SourceAccountID      *uuid.UUID
	DestinationAccountID *uuid.UUID
	CategoryID           *uuid.UUID
	Amount               decimal.Decimal
}

// ValidateAmount rejects zero, negative, sub-cent and oversized amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero, got %s", domain.ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(money.MaxAmount) {
		return fmt.Errorf("%w: amount %s exceeds %s", domain.ErrInvalidAmount, amount, money.MaxAmount)
	}
	if !money.HasValidScale(amount) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", domain.ErrInvalidAmount, amount, money.Scale)
	}
	return nil
}

// Normalize clears the account references the kind does not use.
func (t *Transaction) Normalize() {
	if !t.Kind.UsesSource() {
		t.SourceAccountID = nil
	}
	if !t.Kind.UsesDestination() {
		t.DestinationAccountID = nil
	}
}

// Validate checks the shape of t without touching storage. Ownership of the
// referenced accounts and category is checked by the caller.
func (t Transaction) Validate() error {
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	if _, err := ParseKind(string(t.Kind)); err != nil {
		return err
	}
	if t.Kind.UsesSource() && isNil(t.SourceAccountID) {
		return fmt.Errorf("%w: source account is required for %s", domain.ErrAccountNotFound, t.Kind)
	}
	if t.Kind.UsesDestination() && isNil(t.DestinationAccountID) {
		return fmt.Errorf("%w: destination account is required for %s", domain.ErrAccountNotFound, t.Kind)
	}
	if t.Kind == KindTransfer && *t.SourceAccountID == *t.DestinationAccountID {
		return domain.ErrInvalidTransfer
	}
	if t.Kind.RequiresCategory() && isNil(t.CategoryID) {
		return fmt.Errorf("%w: category is required for %s", domain.ErrCategoryNotFound, t.Kind)
	}
	return nil
}

// Effect is a signed balance change on one account.
type Effect struct {
	AccountID uuid.UUID
	Delta     decimal.Decimal
}

// Effects returns the balance changes t applies. Source first, then destination.
func Effects(t Transaction) []Effect {
	effects := make([]Effect, 0, 2)
	if t.Kind.UsesSource() && !isNil(t.SourceAccountID) {
		effects = append(effects, Effect{AccountID: *t.SourceAccountID, Delta: t.Amount.Neg()})
	}
	if t.Kind.UsesDestination() && !isNil(t.DestinationAccountID) {
		effects = append(effects, Effect{AccountID: *t.DestinationAccountID, Delta: t.Amount})
	}
	return effects
}

// Inverse negates every effect.
func Inverse(effects []Effect) []Effect {
	out := make([]Effect, len(effects))
	for i, e := range effects {
		out[i] = Effect{AccountID: e.AccountID, Delta: e.Delta.Neg()}
	}
	return out
}

func isNil(id *uuid.UUID) bool {
	return id == nil || *id == uuid.Nil
}
