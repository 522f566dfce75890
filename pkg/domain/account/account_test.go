package account_test

import (
	"testing"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/domain/account"
	"github.com/amirasaad/amanah/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	k, err := account.ParseKind("Bank")
	require.NoError(t, err)
	assert.Equal(t, account.KindBank, k)

	_, err = account.ParseKind("wallet")
	require.ErrorIs(t, err, domain.ErrInvalidKind)
}

func TestRebase(t *testing.T) {
	tests := []struct {
		name                      string
		current, oldInit, newInit string
		want                      string
	}{
		{"raise opening", "150", "100", "300", "350"},
		{"lower opening", "150", "100", "0", "50"},
		{"unchanged", "150", "100", "100", "150"},
		{"negative result", "10", "100", "0", "-90"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := account.Rebase(
				decimal.RequireFromString(tt.current),
				decimal.RequireFromString(tt.oldInit),
				decimal.RequireFromString(tt.newInit),
			)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestValidateInitialBalance(t *testing.T) {
	require.NoError(t, account.ValidateInitialBalance(decimal.RequireFromString("-20.5")))
	require.ErrorIs(t, account.ValidateInitialBalance(decimal.RequireFromString("1.234")), domain.ErrInvalidAmount)

	require.NoError(t, account.ValidateInitialBalance(money.MaxAmount))
	require.NoError(t, account.ValidateInitialBalance(money.MaxAmount.Neg()))
	past := money.MaxAmount.Add(decimal.RequireFromString("0.01"))
	require.ErrorIs(t, account.ValidateInitialBalance(past), domain.ErrInvalidAmount)
	require.ErrorIs(t, account.ValidateInitialBalance(past.Neg()), domain.ErrInvalidAmount)
}

func TestNormalizeCurrency(t *testing.T) {
	c, err := account.NormalizeCurrency("", "INR")
	require.NoError(t, err)
	assert.Equal(t, money.INR, c)

	c, err = account.NormalizeCurrency("usd", "INR")
	require.NoError(t, err)
	assert.Equal(t, money.USD, c)

	_, err = account.NormalizeCurrency("dollars", "INR")
	require.Error(t, err)
}
