package account

import (
	"context"

	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines account data access. Every method is scoped to the
// owning user; an account owned by someone else is reported as not found.
type Repository interface {
	// Create inserts a new account. Its current balance starts at the initial balance.
	Create(ctx context.Context, create dto.AccountCreate) error

	// Update applies the non-nil fields of update. It never touches current_balance.
	Update(ctx context.Context, userID, id uuid.UUID, update dto.AccountUpdate) error

	// Get retrieves one account.
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.AccountRead, error)

	// ListByUser lists the user's accounts, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error)

	// AdjustBalance adds delta to current_balance in a single statement.
	AdjustBalance(ctx context.Context, userID, id uuid.UUID, delta decimal.Decimal) error

	// Delete removes an account.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
