package infra

import (
	"errors"
	"fmt"
	"strings"

	accountrepo "github.com/amirasaad/amanah/infra/repository/account"
	categoryrepo "github.com/amirasaad/amanah/infra/repository/category"
	stockrepo "github.com/amirasaad/amanah/infra/repository/stock"
	transactionrepo "github.com/amirasaad/amanah/infra/repository/transaction"
	userrepo "github.com/amirasaad/amanah/infra/repository/user"
	zakatrepo "github.com/amirasaad/amanah/infra/repository/zakat"
	"github.com/amirasaad/amanah/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqliteScheme = "sqlite://"

// NewDBConnection opens the database named by cnf.Url. postgres:// and
// postgresql:// URLs use the postgres driver; sqlite://<path> uses sqlite,
// with sqlite://:memory: for a throwaway database.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	dialector, err := dialectorFor(cnf.Url)
	if err != nil {
		return nil, err
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if isSQLite(cnf.Url) {
		// A single connection keeps :memory: databases alive and serialises writers.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cnf.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cnf.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cnf.ConnMaxLifetime)

	return connection, nil
}

func isSQLite(url string) bool {
	return strings.HasPrefix(url, sqliteScheme)
}

func dialectorFor(url string) (gorm.Dialector, error) {
	switch {
	case isSQLite(url):
		path := strings.TrimPrefix(url, sqliteScheme)
		if path == "" {
			return nil, fmt.Errorf("sqlite URL %q has no path", url)
		}
		return sqlite.Open(path), nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), nil
	default:
		return nil, fmt.Errorf("unsupported database URL scheme: %q", url)
	}
}

// Models lists every persisted gorm model.
func Models() []any {
	return []any{
		&userrepo.User{},
		&accountrepo.Account{},
		&categoryrepo.Category{},
		&transactionrepo.Transaction{},
		&zakatrepo.Record{},
		&stockrepo.Stock{},
	}
}

// AutoMigrate creates or updates tables from the gorm models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Migrate brings the schema up to date: SQL migrations on PostgreSQL,
// model-driven AutoMigrate on SQLite.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		return MigratePostgres(db)
	}
	return AutoMigrate(db)
}
