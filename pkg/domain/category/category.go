// Package category defines income and expense categories and the default
// set every new user starts with.
package category

import (
	"fmt"
	"strings"

	"github.com/amirasaad/amanah/pkg/domain"
)

// Kind is the side of the ledger a category belongs to.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// ParseKind validates s as a category kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindExpense, KindIncome:
		return k, nil
	default:
		return "", fmt.Errorf("%w: category kind %q", domain.ErrInvalidKind, s)
	}
}

// Default is a seed category.
type Default struct {
	Name string
	Kind Kind
}

// Defaults returns the categories created for every new user.
func Defaults() []Default {
	return []Default{
		{"Salary", KindIncome},
		{"Business", KindIncome},
		{"Gift", KindIncome},
		{"Bonus", KindIncome},
		{"Food", KindExpense},
		{"Transport", KindExpense},
		{"Rent", KindExpense},
		{"Education", KindExpense},
		{"Health", KindExpense},
		{"Shopping", KindExpense},
		{"Entertainment", KindExpense},
		{"Utilities", KindExpense},
		{"Investment", KindExpense},
		{"Other", KindExpense},
	}
}
