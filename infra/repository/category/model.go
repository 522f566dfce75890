package category

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a category record in the database.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categories_owner_name_kind"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_categories_owner_name_kind"`
	Kind      string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_categories_owner_name_kind"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Category model.
func (Category) TableName() string {
	return "categories"
}
