package user

import (
	"time"

	"github.com/amirasaad/amanah/pkg/dto"
)

//revive:disable

// UpdateProfileRequest represents the request body for updating the profile.
type UpdateProfileRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=255"`
	DefaultCurrency *string `json:"default_currency" validate:"omitempty,len=3,alpha"`
}

// ProfileDTO is the API response representation of the current user.
type ProfileDTO struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	DefaultCurrency string `json:"default_currency"`
	CreatedAt       string `json:"created_at"`
}

func ToProfileDTO(u *dto.UserRead) *ProfileDTO {
	return &ProfileDTO{
		ID:              u.ID.String(),
		Username:        u.Username,
		Name:            u.Name,
		DefaultCurrency: u.DefaultCurrency,
		CreatedAt:       u.CreatedAt.Format(time.RFC3339),
	}
}
