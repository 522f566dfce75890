package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Transaction represents a persisted ledger transaction. Amount is stored
// in minor units and is always positive; the kind decides the sign.
type Transaction struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID  `gorm:"type:uuid;not null;index"`
	Kind                 string     `gorm:"type:varchar(16);not null"`
	SourceAccountID      *uuid.UUID `gorm:"type:uuid;index"`
	DestinationAccountID *uuid.UUID `gorm:"type:uuid;index"`
	CategoryID           *uuid.UUID `gorm:"type:uuid;index"`
	Amount               int64      `gorm:"not null"`
	Note                 string     `gorm:"type:text"`
	Date                 time.Time  `gorm:"type:date;not null;index"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// transactionRow is a transaction joined with its category.
type transactionRow struct {
	Transaction
	CategoryName *string
	CategoryKind *string
}
