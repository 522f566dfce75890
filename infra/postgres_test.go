package infra_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/amanah/infra"
	"github.com/amirasaad/amanah/pkg/config"
	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/service/ledger"
	"github.com/amirasaad/amanah/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// PostgresTestSuite runs the ledger against a real PostgreSQL schema built
// by the SQL migrations.
type PostgresTestSuite struct {
	suite.Suite
	pgContainer *tcpostgres.PostgresContainer
	db          *gorm.DB
}

func TestPostgresTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL container tests in short mode")
	}
	suite.Run(t, new(PostgresTestSuite))
}

func (s *PostgresTestSuite) SetupSuite() {
	ctx := context.Background()
	pg, err := tcpostgres.Run(
		ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("amanah"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.pgContainer = pg

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = infra.NewDBConnection(&config.DB{
		Url:          dsn,
		MaxOpenConns: 10,
		MaxIdleConns: 10,
	}, "test")
	s.Require().NoError(err)
	s.Require().NoError(infra.Migrate(s.db))
	// A second run is a no-op.
	s.Require().NoError(infra.Migrate(s.db))
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(context.Background())
	}
}

func (s *PostgresTestSuite) TestSchema() {
	for _, table := range []string{"users", "accounts", "categories", "transactions", "zakat_records", "stocks"} {
		s.True(s.db.Migrator().HasTable(table), table)
	}
}

func (s *PostgresTestSuite) TestConcurrentExpensesKeepBalance() {
	ctx := context.Background()
	uow := infra.NewUoW(s.db)
	svc := ledger.New(uow, nil, testutils.NewTestLogger())

	userID := testutils.SeedUser(s.T(), uow, "pg_"+uuid.NewString()[:8])
	wallet := testutils.SeedAccount(s.T(), uow, userID, "Wallet", "cash", "1000")
	food := testutils.SeedCategory(s.T(), uow, userID, "Food", "expense")

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateTransaction(ctx, dto.TransactionCommand{
				UserID:          userID,
				Kind:            "expense",
				SourceAccountID: &wallet,
				CategoryID:      &food,
				Amount:          decimal.RequireFromString("12.5"),
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	s.Equal("750.00", testutils.Balance(s.T(), uow, userID, wallet).StringFixed(2))
}

func (s *PostgresTestSuite) TestUpdateRollsBackOnFailure() {
	ctx := context.Background()
	uow := infra.NewUoW(s.db)
	svc := ledger.New(uow, nil, testutils.NewTestLogger())

	userID := testutils.SeedUser(s.T(), uow, "pg_"+uuid.NewString()[:8])
	wallet := testutils.SeedAccount(s.T(), uow, userID, "Wallet", "cash", "500")
	food := testutils.SeedCategory(s.T(), uow, userID, "Food", "expense")

	tx, err := svc.CreateTransaction(ctx, dto.TransactionCommand{
		UserID: userID, Kind: "expense", SourceAccountID: &wallet, CategoryID: &food,
		Amount: decimal.NewFromInt(100),
	})
	s.Require().NoError(err)

	missing := uuid.New()
	_, err = svc.UpdateTransaction(ctx, userID, tx.ID, dto.TransactionPatch{SourceAccountID: &missing})
	s.ErrorIs(err, domain.ErrAccountNotFound)
	s.Equal("400.00", testutils.Balance(s.T(), uow, userID, wallet).StringFixed(2))
}
