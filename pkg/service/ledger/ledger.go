// Package ledger records income, expense and transfer transactions and keeps
// every account's current balance equal to its initial balance plus the
// effects of its transactions.
//
// Each mutation runs in one unit of work: the transaction row and the balance
// increments it causes commit or roll back together.
package ledger

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/amanah/pkg/domain/events"
	"github.com/amirasaad/amanah/pkg/domain/transaction"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/eventbus"
	"github.com/amirasaad/amanah/pkg/repository"
	"github.com/google/uuid"
)

// Service provides ledger operations.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new ledger Service. bus may be nil.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}
}

// CreateTransaction validates and stores a transaction and applies its
// balance effects.
func (s *Service) CreateTransaction(
	ctx context.Context,
	cmd dto.TransactionCommand,
) (tx *dto.TransactionRead, err error) {
	logger := s.logger.With("userID", cmd.UserID, "kind", cmd.Kind, "amount", cmd.Amount)
	logger.Info("CreateTransaction started")

	t := transaction.Transaction{
		Kind:                 transaction.Kind(strings.ToLower(strings.TrimSpace(cmd.Kind))),
		SourceAccountID:      cmd.SourceAccountID,
		DestinationAccountID: cmd.DestinationAccountID,
		CategoryID:           cmd.CategoryID,
		Amount:               cmd.Amount,
	}
	t.Normalize()
	if err = t.Validate(); err != nil {
		logger.Error("CreateTransaction failed: validation error", "error", err)
		return nil, err
	}

	id := uuid.New()
	date := s.dateOrToday(cmd.Date)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := checkReferences(ctx, uow, cmd.UserID, t); err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if err := txRepo.Create(ctx, dto.TransactionCreate{
			ID:                   id,
			UserID:               cmd.UserID,
			Kind:                 string(t.Kind),
			SourceAccountID:      t.SourceAccountID,
			DestinationAccountID: t.DestinationAccountID,
			CategoryID:           t.CategoryID,
			Amount:               t.Amount,
			Note:                 strings.TrimSpace(cmd.Note),
			Date:                 date,
		}); err != nil {
			return err
		}
		if err := applyEffects(ctx, uow, cmd.UserID, transaction.Effects(t)); err != nil {
			return err
		}
		tx, err = txRepo.Get(ctx, cmd.UserID, id)
		return err
	})
	if err != nil {
		logger.Error("CreateTransaction failed", "error", err)
		return nil, err
	}
	logger.Info("CreateTransaction successful", "transactionID", id)
	s.emit(ctx, events.NewTransactionApplied(cmd.UserID, id, "create"))
	return tx, nil
}

// UpdateTransaction reverses the stored transaction's effects, merges patch
// into it, validates the result like a new transaction and applies the new
// effects. Any failure leaves balances and the stored row untouched.
func (s *Service) UpdateTransaction(
	ctx context.Context,
	userID, transactionID uuid.UUID,
	patch dto.TransactionPatch,
) (tx *dto.TransactionRead, err error) {
	logger := s.logger.With("userID", userID, "transactionID", transactionID)
	logger.Info("UpdateTransaction started")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		existing, err := txRepo.Get(ctx, userID, transactionID)
		if err != nil {
			return err
		}
		if err := applyEffects(ctx, uow, userID, transaction.Inverse(transaction.Effects(toDomain(existing)))); err != nil {
			return err
		}

		update := merge(existing, patch)
		t := transaction.Transaction{
			Kind:                 transaction.Kind(update.Kind),
			SourceAccountID:      update.SourceAccountID,
			DestinationAccountID: update.DestinationAccountID,
			CategoryID:           update.CategoryID,
			Amount:               update.Amount,
		}
		t.Normalize()
		if err := t.Validate(); err != nil {
			return err
		}
		if err := checkReferences(ctx, uow, userID, t); err != nil {
			return err
		}
		update.SourceAccountID = t.SourceAccountID
		update.DestinationAccountID = t.DestinationAccountID

		if err := txRepo.Update(ctx, userID, transactionID, update); err != nil {
			return err
		}
		if err := applyEffects(ctx, uow, userID, transaction.Effects(t)); err != nil {
			return err
		}
		tx, err = txRepo.Get(ctx, userID, transactionID)
		return err
	})
	if err != nil {
		logger.Error("UpdateTransaction failed", "error", err)
		return nil, err
	}
	logger.Info("UpdateTransaction successful")
	s.emit(ctx, events.NewTransactionApplied(userID, transactionID, "update"))
	return tx, nil
}

// DeleteTransaction reverses a transaction's effects and removes it.
func (s *Service) DeleteTransaction(
	ctx context.Context,
	userID, transactionID uuid.UUID,
) (err error) {
	logger := s.logger.With("userID", userID, "transactionID", transactionID)
	logger.Info("DeleteTransaction started")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		existing, err := txRepo.Get(ctx, userID, transactionID)
		if err != nil {
			return err
		}
		if err := applyEffects(ctx, uow, userID, transaction.Inverse(transaction.Effects(toDomain(existing)))); err != nil {
			return err
		}
		return txRepo.Delete(ctx, userID, transactionID)
	})
	if err != nil {
		logger.Error("DeleteTransaction failed", "error", err)
		return err
	}
	logger.Info("DeleteTransaction successful")
	s.emit(ctx, events.NewTransactionApplied(userID, transactionID, "delete"))
	return nil
}

// GetTransaction returns one transaction joined with its category.
func (s *Service) GetTransaction(
	ctx context.Context,
	userID, transactionID uuid.UUID,
) (*dto.TransactionRead, error) {
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, userID, transactionID)
}

// ListTransactions returns the user's transactions matching filter, newest first.
func (s *Service) ListTransactions(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.TransactionFilter,
) ([]*dto.TransactionRead, error) {
	repo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	if filter.StartDate != nil {
		d := truncateToDate(*filter.StartDate)
		filter.StartDate = &d
	}
	if filter.EndDate != nil {
		d := truncateToDate(*filter.EndDate)
		filter.EndDate = &d
	}
	return repo.List(ctx, userID, filter)
}

// checkReferences verifies that every account and category t refers to
// belongs to userID.
func checkReferences(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID uuid.UUID,
	t transaction.Transaction,
) error {
	accRepo, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	for _, id := range []*uuid.UUID{t.SourceAccountID, t.DestinationAccountID} {
		if id == nil {
			continue
		}
		if _, err := accRepo.Get(ctx, userID, *id); err != nil {
			return err
		}
	}
	if t.CategoryID == nil {
		return nil
	}
	catRepo, err := uow.CategoryRepository()
	if err != nil {
		return err
	}
	_, err = catRepo.Get(ctx, userID, *t.CategoryID)
	return err
}

func applyEffects(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID uuid.UUID,
	effects []transaction.Effect,
) error {
	repo, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	for _, e := range effects {
		if err := repo.AdjustBalance(ctx, userID, e.AccountID, e.Delta); err != nil {
			return err
		}
	}
	return nil
}

func toDomain(tx *dto.TransactionRead) transaction.Transaction {
	return transaction.Transaction{
		Kind:                 transaction.Kind(tx.Kind),
		SourceAccountID:      tx.SourceAccountID,
		DestinationAccountID: tx.DestinationAccountID,
		CategoryID:           tx.CategoryID,
		Amount:               tx.Amount,
	}
}

// merge overlays the non-nil fields of patch on the stored transaction.
func merge(existing *dto.TransactionRead, patch dto.TransactionPatch) dto.TransactionUpdate {
	update := dto.TransactionUpdate{
		Kind:                 existing.Kind,
		SourceAccountID:      existing.SourceAccountID,
		DestinationAccountID: existing.DestinationAccountID,
		CategoryID:           existing.CategoryID,
		Amount:               existing.Amount,
		Note:                 existing.Note,
		Date:                 existing.Date,
	}
	if patch.Kind != nil {
		update.Kind = strings.ToLower(strings.TrimSpace(*patch.Kind))
	}
	if patch.SourceAccountID != nil {
		update.SourceAccountID = patch.SourceAccountID
	}
	if patch.DestinationAccountID != nil {
		update.DestinationAccountID = patch.DestinationAccountID
	}
	if patch.CategoryID != nil {
		update.CategoryID = patch.CategoryID
	}
	if patch.Amount != nil {
		update.Amount = *patch.Amount
	}
	if patch.Note != nil {
		update.Note = strings.TrimSpace(*patch.Note)
	}
	if patch.Date != nil {
		update.Date = truncateToDate(*patch.Date)
	}
	return update
}

func (s *Service) dateOrToday(d *time.Time) time.Time {
	if d == nil {
		return truncateToDate(s.now())
	}
	return truncateToDate(*d)
}

// truncateToDate keeps the calendar date of t as midnight UTC.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) emit(ctx context.Context, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, e); err != nil {
		s.logger.Error("failed to emit event", "type", e.Type(), "error", err)
	}
}
