package money_test

import (
	"testing"

	"github.com/amirasaad/amanah/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		minor int64
	}{
		{"whole", "100", 10000},
		{"cents", "100.50", 10050},
		{"smallest", "0.01", 1},
		{"negative", "-42.07", -4207},
		{"zero", "0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.RequireFromString(tt.in)
			minor, err := money.ToMinor(d)
			require.NoError(t, err)
			assert.Equal(t, tt.minor, minor)
			assert.True(t, d.Equal(money.FromMinor(tt.minor)), "got %s", money.FromMinor(tt.minor))
		})
	}
}

func TestToMinor_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"max amount", money.MaxAmount.String(), true},
		{"max balance", money.MaxBalance.String(), true},
		{"int64 edge", "92233720368547758.07", true},
		{"past int64", "92233720368547758.08", false},
		{"wraps negative", "100000000000000000", false},
		{"below int64", "-92233720368547758.09", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minor, err := money.ToMinor(decimal.RequireFromString(tt.in))
			if !tt.ok {
				require.ErrorIs(t, err, money.ErrOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, money.FromMinor(minor).StringFixed(2))
		})
	}
}

func TestWithinLimit(t *testing.T) {
	past := money.MaxAmount.Add(decimal.RequireFromString("0.01"))
	assert.True(t, money.WithinLimit(money.MaxAmount, money.MaxAmount))
	assert.True(t, money.WithinLimit(money.MaxAmount.Neg(), money.MaxAmount))
	assert.False(t, money.WithinLimit(past, money.MaxAmount))
	assert.False(t, money.WithinLimit(past.Neg(), money.MaxAmount))
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "2.35", money.Round2(decimal.RequireFromString("2.345")).StringFixed(2))
	assert.Equal(t, "-2.35", money.Round2(decimal.RequireFromString("-2.345")).StringFixed(2))
	assert.Equal(t, "2.34", money.Round2(decimal.RequireFromString("2.3449")).StringFixed(2))
	assert.Equal(t, "2000.00", money.Round2(decimal.RequireFromString("2000")).StringFixed(2))
}

func TestHasValidScale(t *testing.T) {
	assert.True(t, money.HasValidScale(decimal.RequireFromString("0.01")))
	assert.True(t, money.HasValidScale(decimal.RequireFromString("12")))
	assert.False(t, money.HasValidScale(decimal.RequireFromString("0.001")))
}

func TestParse(t *testing.T) {
	d, err := money.Parse("48988.79")
	require.NoError(t, err)
	assert.Equal(t, "48988.79", d.String())

	_, err = money.Parse("abc")
	require.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = money.Parse("1.005")
	require.ErrorIs(t, err, money.ErrTooManyDecimals)
}

func TestSumAndOrZero(t *testing.T) {
	total := money.Sum(decimal.NewFromInt(1), decimal.RequireFromString("2.50"), money.OrZero(nil))
	assert.Equal(t, "3.5", total.String())
}

func TestCode_IsValid(t *testing.T) {
	assert.True(t, money.INR.IsValid())
	assert.True(t, money.Code("USD").IsValid())
	assert.False(t, money.Code("usd").IsValid())
	assert.False(t, money.Code("US").IsValid())
}
