// Package category provides business logic for income and expense categories.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/domain/category"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/repository"
	"github.com/google/uuid"
)

// Service provides category operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new category Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateCategory stores a new category for userID.
func (s *Service) CreateCategory(
	ctx context.Context,
	userID uuid.UUID,
	name, kind string,
) (c *dto.CategoryRead, err error) {
	logger := s.logger.With("userID", userID, "name", name, "kind", kind)
	logger.Info("CreateCategory started")

	name = strings.TrimSpace(name)
	if name == "" {
		err = fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
		logger.Error("CreateCategory failed: invalid name", "error", err)
		return nil, err
	}
	k, err := category.ParseKind(kind)
	if err != nil {
		logger.Error("CreateCategory failed: invalid kind", "error", err)
		return nil, err
	}

	id := uuid.New()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, dto.CategoryCreate{
			ID:     id,
			UserID: userID,
			Name:   name,
			Kind:   string(k),
		}); err != nil {
			return err
		}
		c, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		logger.Error("CreateCategory failed", "error", err)
		return nil, err
	}
	logger.Info("CreateCategory successful", "categoryID", id)
	return c, nil
}

// GetCategory returns one category.
func (s *Service) GetCategory(ctx context.Context, userID, id uuid.UUID) (*dto.CategoryRead, error) {
	repo, err := s.uow.CategoryRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, userID, id)
}

// ListCategories lists the user's categories, optionally of one kind.
func (s *Service) ListCategories(
	ctx context.Context,
	userID uuid.UUID,
	kind string,
) ([]*dto.CategoryRead, error) {
	if kind != "" {
		k, err := category.ParseKind(kind)
		if err != nil {
			return nil, err
		}
		kind = string(k)
	}
	repo, err := s.uow.CategoryRepository()
	if err != nil {
		return nil, err
	}
	return repo.ListByUser(ctx, userID, kind)
}

// UpdateCategory renames a category or changes its kind.
func (s *Service) UpdateCategory(
	ctx context.Context,
	userID, id uuid.UUID,
	update dto.CategoryUpdate,
) (c *dto.CategoryRead, err error) {
	logger := s.logger.With("userID", userID, "categoryID", id)
	logger.Info("UpdateCategory started")

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			err = fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
			logger.Error("UpdateCategory failed: invalid name", "error", err)
			return nil, err
		}
		update.Name = &name
	}
	if update.Kind != nil {
		k, err := category.ParseKind(*update.Kind)
		if err != nil {
			logger.Error("UpdateCategory failed: invalid kind", "error", err)
			return nil, err
		}
		ks := string(k)
		update.Kind = &ks
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, userID, id, update); err != nil {
			return err
		}
		c, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		logger.Error("UpdateCategory failed", "error", err)
		return nil, err
	}
	logger.Info("UpdateCategory successful")
	return c, nil
}

// DeleteCategory removes a category no transaction refers to.
func (s *Service) DeleteCategory(ctx context.Context, userID, id uuid.UUID) (err error) {
	logger := s.logger.With("userID", userID, "categoryID", id)
	logger.Info("DeleteCategory started")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, userID, id); err != nil {
			return err
		}
		count, err := txRepo.CountByCategory(ctx, userID, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %d transactions reference it", domain.ErrCategoryHasTransactions, count)
		}
		return repo.Delete(ctx, userID, id)
	})
	if err != nil {
		logger.Error("DeleteCategory failed", "error", err)
		return err
	}
	logger.Info("DeleteCategory successful")
	return nil
}

// SeedDefaults creates the default categories for a new user.
func (s *Service) SeedDefaults(ctx context.Context, userID uuid.UUID) error {
	logger := s.logger.With("userID", userID)
	logger.Info("SeedDefaults started")

	defaults := category.Defaults()
	creates := make([]dto.CategoryCreate, 0, len(defaults))
	for _, d := range defaults {
		creates = append(creates, dto.CategoryCreate{
			ID:     uuid.New(),
			UserID: userID,
			Name:   d.Name,
			Kind:   string(d.Kind),
		})
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		return repo.CreateMany(ctx, creates)
	})
	if err != nil {
		logger.Error("SeedDefaults failed", "error", err)
		return err
	}
	logger.Info("SeedDefaults successful", "count", len(creates))
	return nil
}
