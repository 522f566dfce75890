package account

import (
	"time"

	"github.com/google/uuid"
)

// Account represents an account record in the database. Balances are
// stored in minor units.
type Account struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"size:100;not null"`
	Kind           string    `gorm:"type:varchar(16);not null"`
	InitialBalance int64     `gorm:"not null;default:0"`
	CurrentBalance int64     `gorm:"not null;default:0"`
	Currency       string    `gorm:"type:varchar(3);not null;default:'INR'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
