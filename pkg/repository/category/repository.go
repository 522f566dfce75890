package category

import (
	"context"

	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines category data access, scoped to the owning user.
type Repository interface {
	Create(ctx context.Context, create dto.CategoryCreate) error
	// CreateMany inserts all categories in one statement.
	CreateMany(ctx context.Context, creates []dto.CategoryCreate) error
	Update(ctx context.Context, userID, id uuid.UUID, update dto.CategoryUpdate) error
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.CategoryRead, error)
	// ListByUser lists categories ordered by name. An empty kind lists all.
	ListByUser(ctx context.Context, userID uuid.UUID, kind string) ([]*dto.CategoryRead, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
