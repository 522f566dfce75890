// Package user provides business logic for registering users and managing
// their profiles.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/domain/account"
	"github.com/amirasaad/amanah/pkg/domain/events"
	"github.com/amirasaad/amanah/pkg/domain/user"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/eventbus"
	"github.com/amirasaad/amanah/pkg/repository"
	"github.com/google/uuid"
)

// Service provides user operations.
type Service struct {
	uow             repository.UnitOfWork
	bus             eventbus.Bus
	defaultCurrency string
	logger          *slog.Logger
}

// New creates a new user Service. bus may be nil.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	defaultCurrency string,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:             uow,
		bus:             bus,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// RegisterCommand is the input for Register.
type RegisterCommand struct {
	Username        string
	Password        string
	Name            string
	DefaultCurrency string
}

// Register stores a new user and publishes UserRegistered. Handlers of that
// event cannot fail the registration.
func (s *Service) Register(
	ctx context.Context,
	cmd RegisterCommand,
) (u *dto.UserRead, err error) {
	logger := s.logger.With("username", cmd.Username)
	logger.Info("Register started")

	username, err := user.NormalizeUsername(cmd.Username)
	if err != nil {
		logger.Error("Register failed: invalid username", "error", err)
		return nil, err
	}
	currency, err := account.NormalizeCurrency(cmd.DefaultCurrency, s.defaultCurrency)
	if err != nil {
		logger.Error("Register failed: invalid currency", "error", err)
		return nil, err
	}
	hashed, err := user.HashPassword(cmd.Password)
	if err != nil {
		logger.Error("Register failed: invalid password", "error", err)
		return nil, err
	}

	id := uuid.New()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		exists, err := repo.ExistsByUsername(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: username %q is taken", domain.ErrAlreadyExists, username)
		}
		if err := repo.Create(ctx, dto.UserCreate{
			ID:              id,
			Username:        username,
			Name:            strings.TrimSpace(cmd.Name),
			DefaultCurrency: currency.String(),
			Password:        hashed,
		}); err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		logger.Error("Register failed", "error", err)
		return nil, err
	}
	logger.Info("Register successful", "userID", id)

	if s.bus != nil {
		if err := s.bus.Emit(ctx, events.NewUserRegistered(id, username)); err != nil {
			logger.Error("failed to emit UserRegistered", "error", err)
		}
	}
	return u, nil
}

// GetUser returns a user by id.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserRead, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, userID)
}

// GetUserByUsername returns a user by username.
func (s *Service) GetUserByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	normalized, err := user.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.GetByUsername(ctx, normalized)
}

// MaxNameLength bounds a display name.
const MaxNameLength = 255

// UpdateProfile changes the user's display name or default currency and
// returns the stored profile.
func (s *Service) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	update dto.UserUpdate,
) (u *dto.UserRead, err error) {
	logger := s.logger.With("userID", userID)
	logger.Info("UpdateProfile started")

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if len(name) > MaxNameLength {
			err = fmt.Errorf("%w: name longer than %d characters", domain.ErrInvalidInput, MaxNameLength)
			logger.Error("UpdateProfile failed: invalid name", "error", err)
			return nil, err
		}
		update.Name = &name
	}
	if update.DefaultCurrency != nil {
		currency, err := account.NormalizeCurrency(*update.DefaultCurrency, s.defaultCurrency)
		if err != nil {
			logger.Error("UpdateProfile failed: invalid currency", "error", err)
			return nil, err
		}
		code := currency.String()
		update.DefaultCurrency = &code
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, userID); err != nil {
			return err
		}
		if err := repo.Update(ctx, userID, update); err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		logger.Error("UpdateProfile failed", "error", err)
		return nil, err
	}
	logger.Info("UpdateProfile successful")
	return u, nil
}
