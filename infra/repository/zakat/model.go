package zakat

import (
	"time"

	"github.com/google/uuid"
)

// Record represents a stored zakat calculation.
type Record struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	TotalAssets int64     `gorm:"not null"`
	NetAssets   int64     `gorm:"not null"`
	NisabValue  int64     `gorm:"not null"`
	NisabBasis  string    `gorm:"type:varchar(16);not null"`
	ZakatDue    int64     `gorm:"not null"`
	IsZakatDue  bool      `gorm:"not null"`
	Inputs      string    `gorm:"type:text"`
	Date        time.Time `gorm:"type:date;not null;index"`
	CreatedAt   time.Time
}

// TableName specifies the table name for the Record model.
func (Record) TableName() string {
	return "zakat_records"
}
