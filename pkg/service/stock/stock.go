// Package stock provides business logic for manually valued holdings.
package stock

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amirasaad/amanah/pkg/domain/stock"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides holding operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new stock Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateCommand carries the fields of a new holding.
type CreateCommand struct {
	UserID uuid.UUID
	Name   string
	Value  decimal.Decimal
	Notes  string
}

// CreateStock stores a new holding for cmd.UserID.
func (s *Service) CreateStock(ctx context.Context, cmd CreateCommand) (h *dto.StockRead, err error) {
	logger := s.logger.With("userID", cmd.UserID, "name", cmd.Name, "value", cmd.Value)
	logger.Info("CreateStock started")

	name, err := stock.NormalizeName(cmd.Name)
	if err != nil {
		logger.Error("CreateStock failed: invalid name", "error", err)
		return nil, err
	}
	if err = stock.ValidateValue(cmd.Value); err != nil {
		logger.Error("CreateStock failed: invalid value", "error", err)
		return nil, err
	}

	id := uuid.New()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.StockRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, dto.StockCreate{
			ID:     id,
			UserID: cmd.UserID,
			Name:   name,
			Value:  cmd.Value,
			Notes:  strings.TrimSpace(cmd.Notes),
		}); err != nil {
			return err
		}
		h, err = repo.Get(ctx, cmd.UserID, id)
		return err
	})
	if err != nil {
		logger.Error("CreateStock failed", "error", err)
		return nil, err
	}
	logger.Info("CreateStock successful", "stockID", id)
	return h, nil
}

// GetStock returns one holding.
func (s *Service) GetStock(ctx context.Context, userID, id uuid.UUID) (*dto.StockRead, error) {
	repo, err := s.uow.StockRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, userID, id)
}

// ListStocks lists the user's holdings, newest first.
func (s *Service) ListStocks(ctx context.Context, userID uuid.UUID) ([]*dto.StockRead, error) {
	repo, err := s.uow.StockRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, userID)
}

// TotalValue sums the user's holdings.
func (s *Service) TotalValue(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	repo, err := s.uow.StockRepository()
	if err != nil {
		return decimal.Zero, err
	}
	return repo.TotalValue(ctx, userID)
}

// UpdateStock changes any of a holding's name, value or notes.
func (s *Service) UpdateStock(
	ctx context.Context,
	userID, id uuid.UUID,
	update dto.StockUpdate,
) (h *dto.StockRead, err error) {
	logger := s.logger.With("userID", userID, "stockID", id)
	logger.Info("UpdateStock started")

	if update.Name != nil {
		name, err := stock.NormalizeName(*update.Name)
		if err != nil {
			logger.Error("UpdateStock failed: invalid name", "error", err)
			return nil, err
		}
		update.Name = &name
	}
	if update.Value != nil {
		if err := stock.ValidateValue(*update.Value); err != nil {
			logger.Error("UpdateStock failed: invalid value", "error", err)
			return nil, err
		}
	}
	if update.Notes != nil {
		notes := strings.TrimSpace(*update.Notes)
		update.Notes = &notes
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.StockRepository()
		if err != nil {
			return err
		}
		// An empty update still has to report a missing holding.
		if _, err := repo.Get(ctx, userID, id); err != nil {
			return err
		}
		if err := repo.Update(ctx, userID, id, update); err != nil {
			return err
		}
		h, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		logger.Error("UpdateStock failed", "error", err)
		return nil, err
	}
	logger.Info("UpdateStock successful")
	return h, nil
}

// DeleteStock removes a holding.
func (s *Service) DeleteStock(ctx context.Context, userID, id uuid.UUID) error {
	logger := s.logger.With("userID", userID, "stockID", id)
	logger.Info("DeleteStock started")

	repo, err := s.uow.StockRepository()
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, userID, id); err != nil {
		logger.Error("DeleteStock failed", "error", err)
		return err
	}
	logger.Info("DeleteStock successful")
	return nil
}
