package stock

import (
	"context"

	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines access to manually valued holdings, scoped to the owning user.
type Repository interface {
	Create(ctx context.Context, create dto.StockCreate) error
	Update(ctx context.Context, userID, id uuid.UUID, update dto.StockUpdate) error
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.StockRead, error)
	// ListByUser lists holdings newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.StockRead, error)
	// TotalValue sums the value of every holding; zero when there are none.
	TotalValue(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
