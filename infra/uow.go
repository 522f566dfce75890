package infra

import (
	"context"
	"fmt"
	"reflect"

	accountrepo "github.com/amirasaad/amanah/infra/repository/account"
	categoryrepo "github.com/amirasaad/amanah/infra/repository/category"
	stockrepo "github.com/amirasaad/amanah/infra/repository/stock"
	transactionrepo "github.com/amirasaad/amanah/infra/repository/transaction"
	userrepo "github.com/amirasaad/amanah/infra/repository/user"
	zakatrepo "github.com/amirasaad/amanah/infra/repository/zakat"
	"github.com/amirasaad/amanah/pkg/repository"
	"github.com/amirasaad/amanah/pkg/repository/account"
	"github.com/amirasaad/amanah/pkg/repository/category"
	"github.com/amirasaad/amanah/pkg/repository/stock"
	"github.com/amirasaad/amanah/pkg/repository/transaction"
	"github.com/amirasaad/amanah/pkg/repository/user"
	"github.com/amirasaad/amanah/pkg/repository/zakat"
	"gorm.io/gorm"
)

// UoW implements repository.UnitOfWork on top of gorm.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*account.Repository)(nil)).Elem():     func(db *gorm.DB) any { return accountrepo.New(db) },
			reflect.TypeOf((*category.Repository)(nil)).Elem():    func(db *gorm.DB) any { return categoryrepo.New(db) },
			reflect.TypeOf((*stock.Repository)(nil)).Elem():       func(db *gorm.DB) any { return stockrepo.New(db) },
			reflect.TypeOf((*transaction.Repository)(nil)).Elem(): func(db *gorm.DB) any { return transactionrepo.New(db) },
			reflect.TypeOf((*user.Repository)(nil)).Elem():        func(db *gorm.DB) any { return userrepo.New(db) },
			reflect.TypeOf((*zakat.Repository)(nil)).Elem():       func(db *gorm.DB) any { return zakatrepo.New(db) },
		},
	}
}

// Do runs fn in a transaction boundary, providing a UoW whose repositories
// share the transaction. Returning an error from fn rolls everything back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// GetRepository resolves a repository from a nil pointer to its interface,
// e.g. (*account.Repository)(nil).
func (u *UoW) GetRepository(repoType any) (any, error) {
	t := reflect.TypeOf(repoType)
	if t != nil && t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Interface {
		t = t.Elem()
	}
	constructor, ok := u.repoRegistry[t]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", t)
	}
	return constructor(u.session()), nil
}

func (u *UoW) AccountRepository() (account.Repository, error) {
	return getRepository[account.Repository](u)
}

func (u *UoW) CategoryRepository() (category.Repository, error) {
	return getRepository[category.Repository](u)
}

func (u *UoW) StockRepository() (stock.Repository, error) {
	return getRepository[stock.Repository](u)
}

func (u *UoW) TransactionRepository() (transaction.Repository, error) {
	return getRepository[transaction.Repository](u)
}

func (u *UoW) UserRepository() (user.Repository, error) {
	return getRepository[user.Repository](u)
}

func (u *UoW) ZakatRepository() (zakat.Repository, error) {
	return getRepository[zakat.Repository](u)
}

func getRepository[T any](u *UoW) (T, error) {
	var zero T
	repoAny, err := u.GetRepository((*T)(nil))
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("invalid repository type %T", repoAny)
	}
	return repo, nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
