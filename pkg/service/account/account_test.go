package account_test

import (
	"context"
	"testing"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/money"
	"github.com/amirasaad/amanah/pkg/service/account"
	"github.com/amirasaad/amanah/pkg/service/ledger"
	"github.com/amirasaad/amanah/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func TestCreateAccount(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := account.New(uow, "INR", testutils.NewTestLogger())
	userID := testutils.SeedUser(t, uow, "alice")

	acct, err := svc.CreateAccount(context.Background(), dto.AccountCommand{
		UserID:         userID,
		Name:           "  Savings ",
		Kind:           "Bank",
		InitialBalance: dec("1250.75"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Savings", acct.Name)
	assert.Equal(t, "bank", acct.Kind)
	assert.Equal(t, "INR", acct.Currency)
	assert.True(t, acct.CurrentBalance.Equal(dec("1250.75")))
	assert.True(t, acct.InitialBalance.Equal(acct.CurrentBalance))

	usd, err := svc.CreateAccount(context.Background(), dto.AccountCommand{
		UserID: userID, Name: "Travel", Kind: "cash", Currency: "usd",
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", usd.Currency)

	list, err := svc.ListAccounts(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCreateAccount_CurrencyFromProfile(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := account.New(uow, "INR", testutils.NewTestLogger())
	users, err := uow.UserRepository()
	require.NoError(t, err)
	userID := uuid.New()
	require.NoError(t, users.Create(context.Background(), dto.UserCreate{
		ID: userID, Username: "omar", DefaultCurrency: "AED", Password: "x",
	}))

	acct, err := svc.CreateAccount(context.Background(), dto.AccountCommand{
		UserID: userID, Name: "Wallet", Kind: "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, "AED", acct.Currency)

	explicit, err := svc.CreateAccount(context.Background(), dto.AccountCommand{
		UserID: userID, Name: "Travel", Kind: "cash", Currency: "GBP",
	})
	require.NoError(t, err)
	assert.Equal(t, "GBP", explicit.Currency)
}

func TestCreateAccount_Invalid(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := account.New(uow, "INR", testutils.NewTestLogger())
	userID := uuid.New()

	tests := []struct {
		name    string
		cmd     dto.AccountCommand
		wantErr error
	}{
		{"empty name", dto.AccountCommand{Name: " ", Kind: "cash"}, domain.ErrInvalidInput},
		{"unknown kind", dto.AccountCommand{Name: "x", Kind: "crypto"}, domain.ErrInvalidKind},
		{"sub-cent balance", dto.AccountCommand{Name: "x", Kind: "cash", InitialBalance: dec("0.001")}, domain.ErrInvalidAmount},
		{"bad currency", dto.AccountCommand{Name: "x", Kind: "cash", Currency: "rupee"}, domain.ErrInvalidKind},
		{"oversized balance", dto.AccountCommand{Name: "x", Kind: "bank", InitialBalance: dec("100000000000000000")}, domain.ErrInvalidAmount},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cmd.UserID = userID
			_, err := svc.CreateAccount(context.Background(), tc.cmd)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUpdateAccount_RebasesCurrentBalance(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	logger := testutils.NewTestLogger()
	svc := account.New(uow, "INR", logger)
	ledgerSvc := ledger.New(uow, nil, logger)
	ctx := context.Background()

	userID := testutils.SeedUser(t, uow, "alice")
	acctID := testutils.SeedAccount(t, uow, userID, "Wallet", "cash", "1000")
	food := testutils.SeedCategory(t, uow, userID, "Food", "expense")
	_, err := ledgerSvc.CreateTransaction(ctx, dto.TransactionCommand{
		UserID: userID, Kind: "expense", SourceAccountID: &acctID, CategoryID: &food, Amount: dec("300"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateAccount(ctx, userID, acctID, dto.AccountUpdate{
		Name:           ptr("Pocket"),
		InitialBalance: ptr(dec("1200")),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pocket", updated.Name)
	assert.Equal(t, "1200.00", updated.InitialBalance.StringFixed(2))
	assert.Equal(t, "900.00", updated.CurrentBalance.StringFixed(2))

	updated, err = svc.UpdateAccount(ctx, userID, acctID, dto.AccountUpdate{Kind: ptr("bank")})
	require.NoError(t, err)
	assert.Equal(t, "bank", updated.Kind)
	assert.Equal(t, "900.00", updated.CurrentBalance.StringFixed(2))
}

func TestUpdateAccount_InitialBalanceBounds(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := account.New(uow, "INR", testutils.NewTestLogger())
	ctx := context.Background()
	userID := testutils.SeedUser(t, uow, "alice")
	acctID := testutils.SeedAccount(t, uow, userID, "Savings", "bank", "1000")

	updated, err := svc.UpdateAccount(ctx, userID, acctID, dto.AccountUpdate{InitialBalance: ptr(money.MaxAmount)})
	require.NoError(t, err)
	assert.True(t, money.MaxAmount.Equal(updated.CurrentBalance), "got %s", updated.CurrentBalance)

	past := money.MaxAmount.Add(dec("0.01"))
	_, err = svc.UpdateAccount(ctx, userID, acctID, dto.AccountUpdate{
		Name:           ptr("Renamed"),
		InitialBalance: &past,
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	got, err := svc.GetAccount(ctx, userID, acctID)
	require.NoError(t, err)
	assert.Equal(t, "Savings", got.Name)
	assert.True(t, money.MaxAmount.Equal(got.InitialBalance))
	assert.True(t, money.MaxAmount.Equal(got.CurrentBalance))
}

func TestUpdateAccount_NotFound(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := account.New(uow, "INR", testutils.NewTestLogger())
	userID := testutils.SeedUser(t, uow, "alice")
	otherID := testutils.SeedUser(t, uow, "bob")
	acctID := testutils.SeedAccount(t, uow, otherID, "Wallet", "cash", "10")

	_, err := svc.UpdateAccount(context.Background(), userID, acctID, dto.AccountUpdate{Name: ptr("mine")})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDeleteAccount_GuardedByTransactions(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	logger := testutils.NewTestLogger()
	svc := account.New(uow, "INR", logger)
	ledgerSvc := ledger.New(uow, nil, logger)
	ctx := context.Background()

	userID := testutils.SeedUser(t, uow, "alice")
	cash := testutils.SeedAccount(t, uow, userID, "Wallet", "cash", "100")
	bank := testutils.SeedAccount(t, uow, userID, "Checking", "bank", "100")
	tx, err := ledgerSvc.CreateTransaction(ctx, dto.TransactionCommand{
		UserID: userID, Kind: "transfer", SourceAccountID: &bank, DestinationAccountID: &cash, Amount: dec("5"),
	})
	require.NoError(t, err)

	err = svc.DeleteAccount(ctx, userID, cash)
	require.ErrorIs(t, err, domain.ErrAccountHasTransactions)
	err = svc.DeleteAccount(ctx, userID, bank)
	require.ErrorIs(t, err, domain.ErrAccountHasTransactions)

	require.NoError(t, ledgerSvc.DeleteTransaction(ctx, userID, tx.ID))
	require.NoError(t, svc.DeleteAccount(ctx, userID, cash))

	_, err = svc.GetAccount(ctx, userID, cash)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	err = svc.DeleteAccount(ctx, userID, cash)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
