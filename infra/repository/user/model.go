package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username        string    `gorm:"uniqueIndex;not null;size:50"`
	Password        string    `gorm:"not null"`
	Name            string    `gorm:"size:255"`
	DefaultCurrency string    `gorm:"type:varchar(3);not null;default:'INR'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
