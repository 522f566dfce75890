package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRead is a read-optimized DTO for account queries and API responses.
type AccountRead struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Kind           string
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	Currency       string
	CreatedAt      time.Time
}

// AccountCreate is a DTO for creating a new account.
type AccountCreate struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Kind           string
	InitialBalance decimal.Decimal
	Currency       string
}

// AccountUpdate carries optional account field changes. Balances are never
// written through it; see Repository.AdjustBalance.
type AccountUpdate struct {
	Name           *string
	Kind           *string
	Currency       *string
	InitialBalance *decimal.Decimal
}

// AccountCommand is the service input for creating an account.
type AccountCommand struct {
	UserID         uuid.UUID
	Name           string
	Kind           string
	InitialBalance decimal.Decimal
	Currency       string
}
