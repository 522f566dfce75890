package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserRead is a read-optimized DTO for user queries.
type UserRead struct {
	ID              uuid.UUID
	Username        string
	Name            string
	DefaultCurrency string
	HashedPassword  string
	CreatedAt       time.Time
}

// UserCreate is a DTO for inserting a user with an already hashed password.
type UserCreate struct {
	ID              uuid.UUID
	Username        string
	Name            string
	DefaultCurrency string
	Password        string
}

// UserUpdate carries the profile fields to change. Nil fields are kept.
type UserUpdate struct {
	Name            *string
	DefaultCurrency *string
}
