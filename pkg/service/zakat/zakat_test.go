package zakat_test

import (
	"context"
	"encoding/json"
	"testing"

	infracache "github.com/amirasaad/amanah/infra/cache"
	"github.com/amirasaad/amanah/infra/eventbus"
	"github.com/amirasaad/amanah/pkg/cache"
	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/domain/events"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/money"
	"github.com/amirasaad/amanah/pkg/repository"
	zakatrepo "github.com/amirasaad/amanah/pkg/repository/zakat"
	"github.com/amirasaad/amanah/pkg/service/zakat"
	"github.com/amirasaad/amanah/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func testConfig() *config.Zakat {
	return &config.Zakat{
		GoldPricePerGram:   dec("5000"),
		SilverPricePerGram: dec("80"),
		NisabBasis:         "gold",
	}
}

func TestCalculate_SilverNisabBoundary(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := zakat.New(uow, nil, nil, testConfig(), testutils.NewTestLogger())
	userID := testutils.SeedUser(t, uow, "alice")

	due, err := svc.Calculate(context.Background(), dto.ZakatCommand{
		UserID:      userID,
		ManualCash:  ptr(dec("48988.8")),
		SilverPrice: ptr(dec("80")),
		NisabBasis:  "silver",
	})
	require.NoError(t, err)
	assert.Equal(t, "48988.80", due.NisabValue.StringFixed(2))
	assert.True(t, due.IsDue)
	assert.Equal(t, "1224.72", due.ZakatDue.StringFixed(2))

	notDue, err := svc.Calculate(context.Background(), dto.ZakatCommand{
		UserID:      userID,
		ManualCash:  ptr(dec("48988.79")),
		SilverPrice: ptr(dec("80")),
		NisabBasis:  "silver",
	})
	require.NoError(t, err)
	assert.False(t, notDue.IsDue)
	assert.True(t, notDue.ZakatDue.IsZero())
}

func TestCalculate_DebtsReduceNetAssets(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := zakat.New(uow, nil, nil, testConfig(), testutils.NewTestLogger())
	userID := testutils.SeedUser(t, uow, "alice")

	res, err := svc.Calculate(context.Background(), dto.ZakatCommand{
		UserID:      userID,
		ManualCash:  ptr(dec("100000")),
		Debts:       ptr(dec("20000")),
		SilverPrice: ptr(dec("80")),
		NisabBasis:  "silver",
	})
	require.NoError(t, err)
	assert.Equal(t, "100000.00", res.TotalAssets.StringFixed(2))
	assert.Equal(t, "80000.00", res.NetAssets.StringFixed(2))
	assert.True(t, res.IsDue)
	assert.Equal(t, "2000.00", res.ZakatDue.StringFixed(2))
	require.NotNil(t, res.Record)
	assert.Equal(t, "silver", res.Record.NisabBasis)

	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(res.Record.Inputs, &snapshot))
	assert.Equal(t, "20000", snapshot["debts"])
}

func TestCalculate_CashFromBalancesUnlessManual(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := zakat.New(uow, nil, nil, testConfig(), testutils.NewTestLogger())
	userID := testutils.SeedUser(t, uow, "alice")
	testutils.SeedAccount(t, uow, userID, "Wallet", "cash", "1500.25")
	testutils.SeedAccount(t, uow, userID, "Checking", "bank", "8499.75")

	fromBalances, err := svc.Calculate(context.Background(), dto.ZakatCommand{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, "10000.00", fromBalances.TotalCashAndBank.StringFixed(2))
	assert.Equal(t, "437400.00", fromBalances.NisabValue.StringFixed(2))
	assert.False(t, fromBalances.IsDue)

	manual, err := svc.Calculate(context.Background(), dto.ZakatCommand{
		UserID:     userID,
		ManualCash: ptr(dec("500000")),
	})
	require.NoError(t, err)
	assert.Equal(t, "500000.00", manual.TotalCashAndBank.StringFixed(2))
	assert.True(t, manual.IsDue)
	assert.Equal(t, "12500.00", manual.ZakatDue.StringFixed(2))
}

func TestCalculate_InvestmentsFromHoldingsUnlessSupplied(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := zakat.New(uow, nil, nil, testConfig(), testutils.NewTestLogger())
	userID := testutils.SeedUser(t, uow, "alice")
	other := testutils.SeedUser(t, uow, "bob")
	testutils.SeedAccount(t, uow, userID, "Wallet", "cash", "1000")
	testutils.SeedStock(t, uow, userID, "Index fund", "30000.50")
	testutils.SeedStock(t, uow, userID, "Sukuk", "20000")
	testutils.SeedStock(t, uow, other, "Bond", "999999")
	ctx := context.Background()

	fromHoldings, err := svc.Calculate(ctx, dto.ZakatCommand{
		UserID:      userID,
		SilverPrice: ptr(dec("80")),
		NisabBasis:  "silver",
	})
	require.NoError(t, err)
	assert.Equal(t, "1000.00", fromHoldings.TotalCashAndBank.StringFixed(2))
	assert.Equal(t, "51000.50", fromHoldings.TotalAssets.StringFixed(2))
	assert.True(t, fromHoldings.IsDue)

	supplied, err := svc.Calculate(ctx, dto.ZakatCommand{
		UserID:      userID,
		Investments: ptr(dec("0")),
		SilverPrice: ptr(dec("80")),
		NisabBasis:  "silver",
	})
	require.NoError(t, err)
	assert.Equal(t, "1000.00", supplied.TotalAssets.StringFixed(2))
	assert.False(t, supplied.IsDue)

	none, err := svc.Calculate(ctx, dto.ZakatCommand{UserID: testutils.SeedUser(t, uow, "carol")})
	require.NoError(t, err)
	assert.True(t, none.TotalAssets.IsZero())
}

func TestCalculate_PriceResolution(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	prices := infracache.NewMemoryCache()
	svc := zakat.New(uow, prices, nil, testConfig(), testutils.NewTestLogger())
	userID := testutils.SeedUser(t, uow, "alice")
	ctx := context.Background()

	// Fallback from configuration.
	res, err := svc.Calculate(ctx, dto.ZakatCommand{UserID: userID, ManualCash: ptr(dec("0"))})
	require.NoError(t, err)
	assert.Equal(t, "437400.00", res.NisabValue.StringFixed(2))

	// A supplied price is used and remembered.
	res, err = svc.Calculate(ctx, dto.ZakatCommand{UserID: userID, ManualCash: ptr(dec("0")), GoldPrice: ptr(dec("6000"))})
	require.NoError(t, err)
	assert.Equal(t, "524880.00", res.NisabValue.StringFixed(2))

	cached, err := prices.Get(ctx, cache.Gold)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.True(t, cached.PricePerGram.Equal(dec("6000")))

	res, err = svc.Calculate(ctx, dto.ZakatCommand{UserID: userID, ManualCash: ptr(dec("0"))})
	require.NoError(t, err)
	assert.Equal(t, "524880.00", res.NisabValue.StringFixed(2))
}

func TestCalculate_InvalidInput(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := zakat.New(uow, nil, nil, testConfig(), testutils.NewTestLogger())
	userID := uuid.New()

	for name, cmd := range map[string]dto.ZakatCommand{
		"negative manual cash":  {ManualCash: ptr(dec("-1"))},
		"negative debts":        {Debts: ptr(dec("-0.01"))},
		"negative gold weight":  {GoldWeight: ptr(dec("-2"))},
		"negative price":        {SilverPrice: ptr(dec("-80"))},
		"unknown basis":         {NisabBasis: "platinum"},
		"oversized cash":        {ManualCash: ptr(money.MaxAmount.Add(dec("0.01")))},
		"oversized investments": {Investments: ptr(dec("100000000000000000"))},
		"oversized metal value": {GoldWeight: ptr(money.MaxAmount), GoldPrice: ptr(money.MaxAmount)},
	} {
		t.Run(name, func(t *testing.T) {
			cmd.UserID = userID
			_, err := svc.Calculate(context.Background(), cmd)
			require.ErrorIs(t, err, domain.ErrInvalidZakatInput)
		})
	}
}

type mockZakatRepo struct {
	mock.Mock
}

func (m *mockZakatRepo) Create(ctx context.Context, create dto.ZakatRecordCreate) error {
	return m.Called(ctx, create).Error(0)
}

func (m *mockZakatRepo) Get(ctx context.Context, userID, id uuid.UUID) (*dto.ZakatRecordRead, error) {
	args := m.Called(ctx, userID, id)
	rec, _ := args.Get(0).(*dto.ZakatRecordRead)
	return rec, args.Error(1)
}

func (m *mockZakatRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.ZakatRecordRead, error) {
	args := m.Called(ctx, userID)
	recs, _ := args.Get(0).([]*dto.ZakatRecordRead)
	return recs, args.Error(1)
}

// failingZakatUoW serves a mocked zakat repository inside Do and delegates
// everything else.
type failingZakatUoW struct {
	repository.UnitOfWork
	zakat zakatrepo.Repository
}

func (u *failingZakatUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.UnitOfWork.Do(ctx, func(inner repository.UnitOfWork) error {
		return fn(&failingZakatUoW{UnitOfWork: inner, zakat: u.zakat})
	})
}

func (u *failingZakatUoW) ZakatRepository() (zakatrepo.Repository, error) {
	return u.zakat, nil
}

func TestCalculate_RecordFailureStillReturnsResult(t *testing.T) {
	base, _ := testutils.NewTestUoW(t)
	repo := &mockZakatRepo{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("dto.ZakatRecordCreate")).
		Return(domain.ErrStorageFailure)

	logger := testutils.NewTestLogger()
	bus := eventbus.NewWithMemory(logger)
	svc := zakat.New(&failingZakatUoW{UnitOfWork: base, zakat: repo}, nil, bus, testConfig(), logger)

	res, err := svc.Calculate(context.Background(), dto.ZakatCommand{
		UserID:      uuid.New(),
		ManualCash:  ptr(dec("100000")),
		Debts:       ptr(dec("20000")),
		SilverPrice: ptr(dec("80")),
		NisabBasis:  "silver",
	})
	require.NoError(t, err)
	assert.Nil(t, res.Record)
	assert.Equal(t, "2000.00", res.ZakatDue.StringFixed(2))
	repo.AssertExpectations(t)

	published := bus.Published()
	require.Len(t, published, 1)
	evt, ok := published[0].(*events.ZakatCalculated)
	require.True(t, ok)
	assert.True(t, evt.IsDue)
	assert.False(t, evt.Persisted)
}

func TestHistoryAndNetWorth(t *testing.T) {
	uow, _ := testutils.NewTestUoW(t)
	svc := zakat.New(uow, nil, nil, testConfig(), testutils.NewTestLogger())
	userID := testutils.SeedUser(t, uow, "alice")
	testutils.SeedAccount(t, uow, userID, "Wallet", "cash", "100.10")
	testutils.SeedAccount(t, uow, userID, "Purse", "cash", "0.20")
	testutils.SeedAccount(t, uow, userID, "Checking", "bank", "-50")
	testutils.SeedStock(t, uow, userID, "Index fund", "700.05")
	ctx := context.Background()

	nw, err := svc.GetNetWorth(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "700.05", nw.TotalStocks.StringFixed(2))
	assert.Equal(t, "100.30", nw.TotalCash.StringFixed(2))
	assert.Equal(t, "-50.00", nw.TotalBank.StringFixed(2))
	assert.Equal(t, "50.30", nw.NetWorth.StringFixed(2))

	for range 2 {
		_, err := svc.Calculate(ctx, dto.ZakatCommand{UserID: userID})
		require.NoError(t, err)
	}
	history, err := svc.GetHistory(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	empty, err := svc.GetHistory(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
