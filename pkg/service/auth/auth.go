// Package auth authenticates users and issues the tokens the HTTP API
// expects on protected routes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/domain/user"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const userContextKey contextKey = "user"

// UserIDClaim is the JWT claim carrying the owner id.
const UserIDClaim = "user_id"

type Strategy interface {
	Login(ctx context.Context, username, password string) (*dto.UserRead, error)
	GetCurrentUserID(ctx context.Context) (uuid.UUID, error)
	GenerateToken(ctx context.Context, u *dto.UserRead) (string, error)
}

type Service struct {
	strategy Strategy
	logger   *slog.Logger
}

func New(strategy Strategy, logger *slog.Logger) *Service {
	return &Service{strategy: strategy, logger: logger}
}

func NewWithJWT(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return New(NewJWTStrategy(uow, cfg, logger), logger)
}

func NewWithBasic(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return New(NewBasicAuthStrategy(uow, logger), logger)
}

// WithUserID returns a context carrying an already authenticated user id.
// Strategies that do not read tokens resolve the current user from it.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userContextKey, userID)
}

func (s *Service) GetCurrentUserId(
	token *jwt.Token,
) (userID uuid.UUID, err error) {
	log := s.logger.With("context", "GetCurrentUserId")
	log.Debug("GetCurrentUserId called")
	userID, err = s.strategy.GetCurrentUserID(
		context.WithValue(context.Background(), userContextKey, token),
	)
	if err != nil {
		log.Error("GetCurrentUserId failed", "error", err)
		return
	}
	log.Debug("GetCurrentUserId successful", "userID", userID)
	return
}

// CurrentUserID resolves the user the strategy finds on ctx.
func (s *Service) CurrentUserID(ctx context.Context) (uuid.UUID, error) {
	return s.strategy.GetCurrentUserID(ctx)
}

func (s *Service) Login(
	ctx context.Context,
	username, password string,
) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "Login")
	log.Debug("Login called", "username", username)
	u, err = s.strategy.Login(ctx, username, password)
	if err != nil {
		log.Error("Login failed", "username", username, "error", err)
		return
	}
	log.Info("Login successful", "userID", u.ID)
	return
}

func (s *Service) GenerateToken(
	ctx context.Context,
	u *dto.UserRead,
) (string, error) {
	log := s.logger.With("userID", u.ID)
	log.Debug("GenerateToken called")
	token, err := s.strategy.GenerateToken(ctx, u)
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	log.Debug("GenerateToken successful")
	return token, nil
}

// login looks the user up by username and checks the password. Unknown
// users and wrong passwords are indistinguishable to the caller.
func login(
	ctx context.Context,
	uow repository.UnitOfWork,
	username, password string,
) (*dto.UserRead, error) {
	normalized, err := user.NormalizeUsername(username)
	if err != nil {
		user.CheckPasswordHash(password, "")
		return nil, domain.ErrUserUnauthorized
	}
	repo, err := uow.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository: %w", err)
	}
	u, err := repo.GetByUsername(ctx, normalized)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		u = nil
	}
	hash := ""
	if u != nil {
		hash = u.HashedPassword
	}
	if !user.CheckPasswordHash(password, hash) {
		return nil, domain.ErrUserUnauthorized
	}
	return u, nil
}

// JWTStrategy implements Strategy with HS256 signed tokens.
type JWTStrategy struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

func NewJWTStrategy(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *JWTStrategy {
	return &JWTStrategy{uow: uow, cfg: cfg, logger: logger}
}

func (s *JWTStrategy) GenerateToken(
	ctx context.Context,
	u *dto.UserRead,
) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = u.Username
	claims[UserIDClaim] = u.ID.String()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *JWTStrategy) Login(
	ctx context.Context,
	username, password string,
) (*dto.UserRead, error) {
	return login(ctx, s.uow, username, password)
}

func (s *JWTStrategy) GetCurrentUserID(
	ctx context.Context,
) (uuid.UUID, error) {
	token, ok := ctx.Value(userContextKey).(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	raw, ok := claims[UserIDClaim].(string)
	if !ok {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrUserUnauthorized, err)
	}
	return userID, nil
}

// BasicAuthStrategy implements Strategy for the CLI: a password check and no tokens.
type BasicAuthStrategy struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func NewBasicAuthStrategy(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *BasicAuthStrategy {
	return &BasicAuthStrategy{uow: uow, logger: logger}
}

func (s *BasicAuthStrategy) Login(
	ctx context.Context,
	username, password string,
) (*dto.UserRead, error) {
	return login(ctx, s.uow, username, password)
}

func (s *BasicAuthStrategy) GetCurrentUserID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(userContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, domain.ErrUserUnauthorized
	}
	return userID, nil
}

func (s *BasicAuthStrategy) GenerateToken(context.Context, *dto.UserRead) (string, error) {
	return "", nil
}
