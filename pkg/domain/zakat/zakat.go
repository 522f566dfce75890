// Package zakat computes the annual zakat obligation on net assets.
//
// The calculation is pure: callers resolve cash and metal prices first
// (balances, caches, configuration) and pass the figures in as an Input.
package zakat

import (
	"fmt"
	"strings"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	// GoldNisabGrams is the nisab threshold expressed in grams of gold.
	GoldNisabGrams = decimal.RequireFromString("87.48")
	// SilverNisabGrams is the nisab threshold expressed in grams of silver.
	SilverNisabGrams = decimal.RequireFromString("612.36")
	// Rate is the share of net assets due once nisab is reached.
	Rate = decimal.RequireFromString("0.025")
)

// NisabBasis selects the metal the nisab threshold is priced in.
type NisabBasis string

const (
	BasisGold   NisabBasis = "gold"
	BasisSilver NisabBasis = "silver"
)

// ParseBasis validates s as a nisab basis.
func ParseBasis(s string) (NisabBasis, error) {
	switch b := NisabBasis(strings.ToLower(strings.TrimSpace(s))); b {
	case BasisGold, BasisSilver:
		return b, nil
	default:
		return "", fmt.Errorf("%w: nisab basis %q", domain.ErrInvalidZakatInput, s)
	}
}

// Input carries fully resolved figures for one calculation.
type Input struct {
	Cash         decimal.Decimal `json:"cash"`
	GoldWeight   decimal.Decimal `json:"goldWeight"`
	GoldPrice    decimal.Decimal `json:"goldPrice"`
	SilverWeight decimal.Decimal `json:"silverWeight"`
	SilverPrice  decimal.Decimal `json:"silverPrice"`
	Investments  decimal.Decimal `json:"investments"`
	Debts        decimal.Decimal `json:"debts"`
	Basis        NisabBasis      `json:"nisabBasis"`
}

// Validate rejects negative or oversized figures and unknown bases. Cash may
// be negative when it is the sum of overdrawn balances, so only its size is
// checked.
func (in Input) Validate() error {
	if !money.WithinLimit(in.Cash, money.MaxBalance) {
		return fmt.Errorf("%w: cash exceeds %s", domain.ErrInvalidZakatInput, money.MaxBalance)
	}
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"goldWeight", in.GoldWeight},
		{"goldPrice", in.GoldPrice},
		{"silverWeight", in.SilverWeight},
		{"silverPrice", in.SilverPrice},
		{"investments", in.Investments},
		{"debts", in.Debts},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidZakatInput, f.name)
		}
		if f.value.GreaterThan(money.MaxAmount) {
			return fmt.Errorf("%w: %s exceeds %s", domain.ErrInvalidZakatInput, f.name, money.MaxAmount)
		}
	}
	_, err := ParseBasis(string(in.Basis))
	return err
}

// Result is the outcome of a calculation. Monetary figures are rounded to
// two places; IsDue is decided on the unrounded values.
type Result struct {
	TotalAssets decimal.Decimal
	Cash        decimal.Decimal
	NetAssets   decimal.Decimal
	NisabValue  decimal.Decimal
	ZakatDue    decimal.Decimal
	IsDue       bool
	Basis       NisabBasis
}

// Nisab returns the threshold value for the basis at the given prices.
func Nisab(basis NisabBasis, goldPrice, silverPrice decimal.Decimal) decimal.Decimal {
	if basis == BasisSilver {
		return SilverNisabGrams.Mul(silverPrice)
	}
	return GoldNisabGrams.Mul(goldPrice)
}

// Calculate computes gross and net assets, the nisab threshold and the amount due.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	gross := money.Sum(
		in.Cash,
		in.GoldWeight.Mul(in.GoldPrice),
		in.SilverWeight.Mul(in.SilverPrice),
		in.Investments,
	)
	if !money.WithinLimit(gross, money.MaxBalance) {
		return Result{}, fmt.Errorf("%w: total assets exceed %s", domain.ErrInvalidZakatInput, money.MaxBalance)
	}
	net := decimal.Max(decimal.Zero, gross.Sub(in.Debts))
	nisab := Nisab(in.Basis, in.GoldPrice, in.SilverPrice)

	isDue := net.GreaterThanOrEqual(nisab)
	due := decimal.Zero
	if isDue {
		due = net.Mul(Rate)
	}

	return Result{
		TotalAssets: money.Round2(gross),
		Cash:        money.Round2(in.Cash),
		NetAssets:   money.Round2(net),
		NisabValue:  money.Round2(nisab),
		ZakatDue:    money.Round2(due),
		IsDue:       isDue,
		Basis:       in.Basis,
	}, nil
}
