package transaction

import (
	"context"

	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines transaction data access, scoped to the owning user.
type Repository interface {
	// Create inserts a transaction. Balance effects are applied by the caller.
	Create(ctx context.Context, create dto.TransactionCreate) error

	// Update replaces the mutable fields of a transaction.
	Update(ctx context.Context, userID, id uuid.UUID, update dto.TransactionUpdate) error

	// Get retrieves one transaction joined with its category.
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.TransactionRead, error)

	// List returns the user's transactions matching filter, newest date first.
	List(ctx context.Context, userID uuid.UUID, filter dto.TransactionFilter) ([]*dto.TransactionRead, error)

	Delete(ctx context.Context, userID, id uuid.UUID) error

	// CountByAccount counts transactions referencing the account on either side.
	CountByAccount(ctx context.Context, userID, accountID uuid.UUID) (int64, error)

	// CountByCategory counts transactions referencing the category.
	CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error)
}
