// Package zakat resolves a user's assets and metal prices, runs the zakat
// calculation and keeps an append-only history of the results.
package zakat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/amanah/pkg/cache"
	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/domain/account"
	"github.com/amirasaad/amanah/pkg/domain/events"
	"github.com/amirasaad/amanah/pkg/domain/zakat"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/eventbus"
	"github.com/amirasaad/amanah/pkg/money"
	"github.com/amirasaad/amanah/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides zakat operations.
type Service struct {
	uow    repository.UnitOfWork
	prices cache.MetalPriceCache
	bus    eventbus.Bus
	cfg    *config.Zakat
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new zakat Service. prices and bus may be nil.
func New(
	uow repository.UnitOfWork,
	prices cache.MetalPriceCache,
	bus eventbus.Bus,
	cfg *config.Zakat,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		prices: prices,
		bus:    bus,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Calculate computes zakat for cmd.UserID. Cash defaults to the sum of the
// user's account balances and investments to the sum of their holdings;
// prices default to the last cached price, then to
// configuration. The result is recorded in history, but a failure to record
// it is only logged and the result is returned with a nil Record.
func (s *Service) Calculate(
	ctx context.Context,
	cmd dto.ZakatCommand,
) (res *dto.ZakatResult, err error) {
	logger := s.logger.With("userID", cmd.UserID)
	logger.Info("Calculate started")

	basisName := cmd.NisabBasis
	if basisName == "" {
		basisName = s.cfg.NisabBasis
	}
	basis, err := zakat.ParseBasis(basisName)
	if err != nil {
		logger.Error("Calculate failed: invalid nisab basis", "error", err)
		return nil, err
	}

	cash, err := s.resolveCash(ctx, cmd)
	if err != nil {
		logger.Error("Calculate failed: resolving cash", "error", err)
		return nil, err
	}

	investments, err := s.resolveInvestments(ctx, cmd)
	if err != nil {
		logger.Error("Calculate failed: resolving investments", "error", err)
		return nil, err
	}

	in := zakat.Input{
		Cash:         cash,
		GoldWeight:   money.OrZero(cmd.GoldWeight),
		GoldPrice:    s.resolvePrice(ctx, cache.Gold, cmd.GoldPrice, s.cfg.GoldPricePerGram),
		SilverWeight: money.OrZero(cmd.SilverWeight),
		SilverPrice:  s.resolvePrice(ctx, cache.Silver, cmd.SilverPrice, s.cfg.SilverPricePerGram),
		Investments:  investments,
		Debts:        money.OrZero(cmd.Debts),
		Basis:        basis,
	}
	result, err := zakat.Calculate(in)
	if err != nil {
		logger.Error("Calculate failed: invalid input", "error", err)
		return nil, err
	}

	res = &dto.ZakatResult{
		TotalAssets:      result.TotalAssets,
		TotalCashAndBank: result.Cash,
		NetAssets:        result.NetAssets,
		NisabValue:       result.NisabValue,
		NisabBasis:       string(result.Basis),
		ZakatDue:         result.ZakatDue,
		IsDue:            result.IsDue,
	}

	record, err := s.record(ctx, cmd.UserID, in, result)
	if err != nil {
		logger.Error("Calculate: failed to store zakat record", "error", err)
	}
	res.Record = record
	logger.Info("Calculate successful", "isDue", res.IsDue, "zakatDue", res.ZakatDue, "recorded", record != nil)

	if s.bus != nil {
		evt := &events.ZakatCalculated{
			ID:        uuid.New(),
			UserID:    cmd.UserID,
			IsDue:     res.IsDue,
			Persisted: record != nil,
			Timestamp: s.now().UTC(),
		}
		if err := s.bus.Emit(ctx, evt); err != nil {
			logger.Error("failed to emit ZakatCalculated", "error", err)
		}
	}
	return res, nil
}

// resolveCash returns the manual cash figure when given, else the sum of
// the user's current balances.
func (s *Service) resolveCash(ctx context.Context, cmd dto.ZakatCommand) (decimal.Decimal, error) {
	if cmd.ManualCash != nil {
		if cmd.ManualCash.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: manualCash must not be negative", domain.ErrInvalidZakatInput)
		}
		if cmd.ManualCash.GreaterThan(money.MaxAmount) {
			return decimal.Zero, fmt.Errorf("%w: manualCash exceeds %s", domain.ErrInvalidZakatInput, money.MaxAmount)
		}
		return *cmd.ManualCash, nil
	}
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return decimal.Zero, err
	}
	accounts, err := repo.ListByUser(ctx, cmd.UserID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.CurrentBalance)
	}
	return total, nil
}

// resolveInvestments returns the supplied figure, else the total value of the
// user's holdings. Validation of a supplied figure is left to zakat.Calculate.
func (s *Service) resolveInvestments(ctx context.Context, cmd dto.ZakatCommand) (decimal.Decimal, error) {
	if cmd.Investments != nil {
		return *cmd.Investments, nil
	}
	repo, err := s.uow.StockRepository()
	if err != nil {
		return decimal.Zero, err
	}
	return repo.TotalValue(ctx, cmd.UserID)
}

// resolvePrice prefers the requested price and remembers it, then the cached
// price, then fallback. Cache errors degrade to the next source.
func (s *Service) resolvePrice(
	ctx context.Context,
	metal cache.Metal,
	requested *decimal.Decimal,
	fallback decimal.Decimal,
) decimal.Decimal {
	logger := s.logger.With("metal", metal)
	if requested != nil {
		if s.prices != nil && !requested.IsNegative() {
			err := s.prices.Set(ctx, &cache.MetalPrice{
				Metal:        metal,
				PricePerGram: *requested,
				UpdatedAt:    s.now().UTC(),
			}, s.cfg.PriceTTL)
			if err != nil {
				logger.Warn("failed to cache metal price", "error", err)
			}
		}
		return *requested
	}
	if s.prices != nil {
		cached, err := s.prices.Get(ctx, metal)
		if err != nil {
			logger.Warn("failed to read cached metal price", "error", err)
		} else if cached != nil {
			logger.Debug("using cached metal price", "price", cached.PricePerGram, "updatedAt", cached.UpdatedAt)
			return cached.PricePerGram
		}
	}
	return fallback
}

func (s *Service) record(
	ctx context.Context,
	userID uuid.UUID,
	in zakat.Input,
	result zakat.Result,
) (rec *dto.ZakatRecordRead, err error) {
	inputs, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	now := s.now().UTC()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.ZakatRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, dto.ZakatRecordCreate{
			ID:          id,
			UserID:      userID,
			TotalAssets: result.TotalAssets,
			NetAssets:   result.NetAssets,
			NisabValue:  result.NisabValue,
			NisabBasis:  string(result.Basis),
			ZakatDue:    result.ZakatDue,
			IsDue:       result.IsDue,
			Inputs:      inputs,
			Date:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		}); err != nil {
			return err
		}
		rec, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// GetHistory returns the user's stored calculations, most recent first.
func (s *Service) GetHistory(ctx context.Context, userID uuid.UUID) ([]*dto.ZakatRecordRead, error) {
	repo, err := s.uow.ZakatRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, userID)
}

// GetNetWorth sums the user's account balances by account kind. Holdings are
// reported alongside but stay out of the net worth figure.
func (s *Service) GetNetWorth(ctx context.Context, userID uuid.UUID) (*dto.NetWorth, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	accounts, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stocks, err := s.uow.StockRepository()
	if err != nil {
		return nil, err
	}
	holdings, err := stocks.TotalValue(ctx, userID)
	if err != nil {
		return nil, err
	}
	cash, bank := decimal.Zero, decimal.Zero
	for _, a := range accounts {
		switch account.Kind(a.Kind) {
		case account.KindCash:
			cash = cash.Add(a.CurrentBalance)
		case account.KindBank:
			bank = bank.Add(a.CurrentBalance)
		}
	}
	return &dto.NetWorth{
		NetWorth:    money.Round2(cash.Add(bank)),
		TotalCash:   money.Round2(cash),
		TotalBank:   money.Round2(bank),
		TotalStocks: money.Round2(holdings),
	}, nil
}
