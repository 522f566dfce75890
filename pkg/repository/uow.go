package repository

import (
	"context"

	"github.com/amirasaad/amanah/pkg/repository/account"
	"github.com/amirasaad/amanah/pkg/repository/category"
	"github.com/amirasaad/amanah/pkg/repository/stock"
	"github.com/amirasaad/amanah/pkg/repository/transaction"
	"github.com/amirasaad/amanah/pkg/repository/user"
	"github.com/amirasaad/amanah/pkg/repository/zakat"
)

// UnitOfWork defines the contract for transactional work and repository access.
//
// Repositories obtained from the UnitOfWork passed to Do share its storage
// transaction: if fn returns an error every write made through them is rolled
// back. Repositories obtained outside Do run against the plain connection.
//
// GetRepository resolves a repository by a nil pointer to its interface:
//
//	repoAny, err := uow.GetRepository((*account.Repository)(nil))
//	repo := repoAny.(account.Repository)
type UnitOfWork interface {
	// Do executes fn within a single storage transaction.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns the repository registered for repoType, bound to
	// the current session.
	GetRepository(repoType any) (any, error)

	AccountRepository() (account.Repository, error)
	CategoryRepository() (category.Repository, error)
	StockRepository() (stock.Repository, error)
	TransactionRepository() (transaction.Repository, error)
	UserRepository() (user.Repository, error)
	ZakatRepository() (zakat.Repository, error)
}
