package zakat

import (
	"context"

	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/google/uuid"
)

// Repository stores zakat calculations. Records are append-only.
type Repository interface {
	Create(ctx context.Context, create dto.ZakatRecordCreate) error
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.ZakatRecordRead, error)
	// ListByUser returns the user's records, most recent date first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.ZakatRecordRead, error)
}
