package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRead is a read-optimized DTO for transaction queries, joined
// with its category for display.
type TransactionRead struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Kind                 string
	SourceAccountID      *uuid.UUID
	DestinationAccountID *uuid.UUID
	CategoryID           *uuid.UUID
	CategoryName         string
	CategoryKind         string
	Amount               decimal.Decimal
	Note                 string
	Date                 time.Time
	CreatedAt            time.Time
}

// TransactionCreate is a DTO for inserting a validated transaction.
type TransactionCreate struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Kind                 string
	SourceAccountID      *uuid.UUID
	DestinationAccountID *uuid.UUID
	CategoryID           *uuid.UUID
	Amount               decimal.Decimal
	Note                 string
	Date                 time.Time
}

// TransactionUpdate replaces the mutable fields of a stored transaction.
// Nil references are written as NULL.
type TransactionUpdate struct {
	Kind                 string
	SourceAccountID      *uuid.UUID
	DestinationAccountID *uuid.UUID
	CategoryID           *uuid.UUID
	Amount               decimal.Decimal
	Note                 string
	Date                 time.Time
}

// TransactionCommand is the service input for recording a transaction.
type TransactionCommand struct {
	UserID               uuid.UUID
	Kind                 string
	SourceAccountID      *uuid.UUID
	DestinationAccountID *uuid.UUID
	CategoryID           *uuid.UUID
	Amount               decimal.Decimal
	Note                 string
	Date                 *time.Time
}

// TransactionPatch carries the fields a caller wants changed on an existing
// transaction. Nil means unchanged.
type TransactionPatch struct {
	Kind                 *string
	SourceAccountID      *uuid.UUID
	DestinationAccountID *uuid.UUID
	CategoryID           *uuid.UUID
	Amount               *decimal.Decimal
	Note                 *string
	Date                 *time.Time
}

// TransactionFilter narrows a transaction listing. Dates are inclusive.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
	// AccountID matches either side of a transaction.
	AccountID *uuid.UUID
}
