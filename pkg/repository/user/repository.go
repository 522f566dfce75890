package user

import (
	"context"

	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines user data access.
type Repository interface {
	// Create inserts a new user. A taken username yields domain.ErrAlreadyExists.
	Create(ctx context.Context, create dto.UserCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserRead, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Update changes profile fields. A missing user yields domain.ErrNotFound.
	Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error
}
