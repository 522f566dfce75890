package stock

import (
	"time"

	"github.com/google/uuid"
)

// Stock represents a holding record in the database. Value is in minor units.
type Stock struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:100;not null"`
	Value     int64     `gorm:"not null"`
	Notes     string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Stock model.
func (Stock) TableName() string {
	return "stocks"
}
