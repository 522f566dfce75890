package dto

import (
	"time"

	"github.com/google/uuid"
)

// CategoryRead is a read-optimized DTO for category queries.
type CategoryRead struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Kind      string
	CreatedAt time.Time
}

// CategoryCreate is a DTO for creating a category.
type CategoryCreate struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Kind   string
}

// CategoryUpdate carries optional category field changes.
type CategoryUpdate struct {
	Name *string
	Kind *string
}
