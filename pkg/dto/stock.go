package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockRead is a read-optimized DTO for a manually valued holding.
type StockRead struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Value     decimal.Decimal
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockCreate is a DTO for recording a holding.
type StockCreate struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Value  decimal.Decimal
	Notes  string
}

// StockUpdate carries optional holding field changes.
type StockUpdate struct {
	Name  *string
	Value *decimal.Decimal
	Notes *string
}
