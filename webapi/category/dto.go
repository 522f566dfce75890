package category

import (
	"time"

	"github.com/amirasaad/amanah/pkg/dto"
)

//revive:disable

// CreateCategoryRequest represents the request body for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Kind string `json:"kind" validate:"required,oneof=income expense"`
}

// UpdateCategoryRequest carries the category fields to change.
type UpdateCategoryRequest struct {
	Name *string `json:"name" validate:"omitempty,max=100"`
	Kind *string `json:"kind" validate:"omitempty,oneof=income expense"`
}

// CategoryDTO is the API response representation of a category.
type CategoryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"created_at"`
}

func ToCategoryDTO(c *dto.CategoryRead) *CategoryDTO {
	return &CategoryDTO{
		ID:        c.ID.String(),
		Name:      c.Name,
		Kind:      c.Kind,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func ToCategoryDTOs(categories []*dto.CategoryRead) []*CategoryDTO {
	out := make([]*CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, ToCategoryDTO(c))
	}
	return out
}
