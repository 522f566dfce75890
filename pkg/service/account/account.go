// Package account provides business logic for cash and bank accounts.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/domain/account"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/repository"
	"github.com/google/uuid"
)

// Service provides account operations. Balances are only ever moved through
// the repository's AdjustBalance so the ledger invariant holds.
type Service struct {
	uow             repository.UnitOfWork
	defaultCurrency string
	logger          *slog.Logger
}

// New creates a new account Service.
func New(
	uow repository.UnitOfWork,
	defaultCurrency string,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:             uow,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// userCurrency returns the currency a new account falls back to when none is
// given: the user's profile currency, else the configured default.
func (s *Service) userCurrency(ctx context.Context, userID uuid.UUID, requested string) (string, error) {
	if strings.TrimSpace(requested) != "" {
		return s.defaultCurrency, nil
	}
	repo, err := s.uow.UserRepository()
	if err != nil {
		return "", err
	}
	u, err := repo.Get(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return s.defaultCurrency, nil
	case err != nil:
		return "", err
	case u.DefaultCurrency == "":
		return s.defaultCurrency, nil
	}
	return u.DefaultCurrency, nil
}

// CreateAccount opens an account whose current balance starts at its initial balance.
func (s *Service) CreateAccount(
	ctx context.Context,
	cmd dto.AccountCommand,
) (acct *dto.AccountRead, err error) {
	logger := s.logger.With("userID", cmd.UserID, "name", cmd.Name)
	logger.Info("CreateAccount started")

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		err = fmt.Errorf("%w: account name is required", domain.ErrInvalidInput)
		logger.Error("CreateAccount failed: invalid name", "error", err)
		return nil, err
	}
	kind, err := account.ParseKind(cmd.Kind)
	if err != nil {
		logger.Error("CreateAccount failed: invalid kind", "error", err)
		return nil, err
	}
	if err = account.ValidateInitialBalance(cmd.InitialBalance); err != nil {
		logger.Error("CreateAccount failed: invalid initial balance", "error", err)
		return nil, err
	}
	fallback, err := s.userCurrency(ctx, cmd.UserID, cmd.Currency)
	if err != nil {
		logger.Error("CreateAccount failed: reading profile currency", "error", err)
		return nil, err
	}
	currency, err := account.NormalizeCurrency(cmd.Currency, fallback)
	if err != nil {
		logger.Error("CreateAccount failed: invalid currency", "error", err)
		return nil, err
	}

	id := uuid.New()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, dto.AccountCreate{
			ID:             id,
			UserID:         cmd.UserID,
			Name:           name,
			Kind:           string(kind),
			InitialBalance: cmd.InitialBalance,
			Currency:       currency.String(),
		}); err != nil {
			return err
		}
		acct, err = repo.Get(ctx, cmd.UserID, id)
		return err
	})
	if err != nil {
		logger.Error("CreateAccount failed", "error", err)
		return nil, err
	}
	logger.Info("CreateAccount successful", "accountID", id)
	return acct, nil
}

// GetAccount returns one account owned by userID.
func (s *Service) GetAccount(
	ctx context.Context,
	userID, accountID uuid.UUID,
) (*dto.AccountRead, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, userID, accountID)
}

// ListAccounts returns the user's accounts, newest first.
func (s *Service) ListAccounts(
	ctx context.Context,
	userID uuid.UUID,
) ([]*dto.AccountRead, error) {
	repo, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, userID)
}

// UpdateAccount changes the supplied fields. A new initial balance shifts
// the current balance by the same difference in the same storage transaction.
func (s *Service) UpdateAccount(
	ctx context.Context,
	userID, accountID uuid.UUID,
	update dto.AccountUpdate,
) (acct *dto.AccountRead, err error) {
	logger := s.logger.With("userID", userID, "accountID", accountID)
	logger.Info("UpdateAccount started")

	if update, err = s.normalizeUpdate(update); err != nil {
		logger.Error("UpdateAccount failed: invalid input", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		existing, err := repo.Get(ctx, userID, accountID)
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, userID, accountID, update); err != nil {
			return err
		}
		if update.InitialBalance != nil {
			delta := account.Rebase(existing.CurrentBalance, existing.InitialBalance, *update.InitialBalance).
				Sub(existing.CurrentBalance)
			if !delta.IsZero() {
				if err := repo.AdjustBalance(ctx, userID, accountID, delta); err != nil {
					return err
				}
			}
		}
		acct, err = repo.Get(ctx, userID, accountID)
		return err
	})
	if err != nil {
		logger.Error("UpdateAccount failed", "error", err)
		return nil, err
	}
	logger.Info("UpdateAccount successful", "currentBalance", acct.CurrentBalance)
	return acct, nil
}

func (s *Service) normalizeUpdate(update dto.AccountUpdate) (dto.AccountUpdate, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return update, fmt.Errorf("%w: account name is required", domain.ErrInvalidInput)
		}
		update.Name = &name
	}
	if update.Kind != nil {
		kind, err := account.ParseKind(*update.Kind)
		if err != nil {
			return update, err
		}
		k := string(kind)
		update.Kind = &k
	}
	if update.Currency != nil {
		currency, err := account.NormalizeCurrency(*update.Currency, s.defaultCurrency)
		if err != nil {
			return update, err
		}
		c := currency.String()
		update.Currency = &c
	}
	if update.InitialBalance != nil {
		if err := account.ValidateInitialBalance(*update.InitialBalance); err != nil {
			return update, err
		}
	}
	return update, nil
}

// DeleteAccount removes an account no transaction refers to.
func (s *Service) DeleteAccount(
	ctx context.Context,
	userID, accountID uuid.UUID,
) (err error) {
	logger := s.logger.With("userID", userID, "accountID", accountID)
	logger.Info("DeleteAccount started")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, userID, accountID); err != nil {
			return err
		}
		count, err := txRepo.CountByAccount(ctx, userID, accountID)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %d transactions reference it", domain.ErrAccountHasTransactions, count)
		}
		return repo.Delete(ctx, userID, accountID)
	})
	if err != nil {
		logger.Error("DeleteAccount failed", "error", err)
		return err
	}
	logger.Info("DeleteAccount successful")
	return nil
}
