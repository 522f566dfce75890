// Package testutils builds throwaway storage and fixtures for service and
// HTTP tests.
package testutils

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/amanah/infra"
	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestLogger returns a logger that discards everything.
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTestDB opens a private in-memory SQLite database with the schema
// migrated. It is closed when the test ends.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := infra.NewDBConnection(&config.DB{
		Url: "sqlite://file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, "test")
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewTestUoW returns a UnitOfWork over a fresh in-memory database.
func NewTestUoW(t testing.TB) (repository.UnitOfWork, *gorm.DB) {
	t.Helper()
	db := NewTestDB(t)
	return infra.NewUoW(db), db
}

// SeedUser stores a user with a throwaway password hash and returns its id.
func SeedUser(t testing.TB, uow repository.UnitOfWork, username string) uuid.UUID {
	t.Helper()
	repo, err := uow.UserRepository()
	require.NoError(t, err)
	id := uuid.New()
	require.NoError(t, repo.Create(context.Background(), dto.UserCreate{
		ID:              id,
		Username:        username,
		DefaultCurrency: "INR",
		Password:        "x",
	}))
	return id
}

// SeedAccount stores an account whose current balance equals initial.
func SeedAccount(
	t testing.TB,
	uow repository.UnitOfWork,
	userID uuid.UUID,
	name, kind, initial string,
) uuid.UUID {
	t.Helper()
	repo, err := uow.AccountRepository()
	require.NoError(t, err)
	id := uuid.New()
	require.NoError(t, repo.Create(context.Background(), dto.AccountCreate{
		ID:             id,
		UserID:         userID,
		Name:           name,
		Kind:           kind,
		InitialBalance: decimal.RequireFromString(initial),
		Currency:       "INR",
	}))
	return id
}

// SeedCategory stores a category and returns its id.
func SeedCategory(
	t testing.TB,
	uow repository.UnitOfWork,
	userID uuid.UUID,
	name, kind string,
) uuid.UUID {
	t.Helper()
	repo, err := uow.CategoryRepository()
	require.NoError(t, err)
	id := uuid.New()
	require.NoError(t, repo.Create(context.Background(), dto.CategoryCreate{
		ID:     id,
		UserID: userID,
		Name:   name,
		Kind:   kind,
	}))
	return id
}

// SeedStock stores a holding worth value and returns its id.
func SeedStock(t testing.TB, uow repository.UnitOfWork, userID uuid.UUID, name, value string) uuid.UUID {
	t.Helper()
	repo, err := uow.StockRepository()
	require.NoError(t, err)
	id := uuid.New()
	require.NoError(t, repo.Create(context.Background(), dto.StockCreate{
		ID:     id,
		UserID: userID,
		Name:   name,
		Value:  decimal.RequireFromString(value),
	}))
	return id
}

// Balance reads the current balance of an account.
func Balance(t testing.TB, uow repository.UnitOfWork, userID, accountID uuid.UUID) decimal.Decimal {
	t.Helper()
	repo, err := uow.AccountRepository()
	require.NoError(t, err)
	acct, err := repo.Get(context.Background(), userID, accountID)
	require.NoError(t, err)
	return acct.CurrentBalance
}
