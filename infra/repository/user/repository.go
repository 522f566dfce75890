package user

import (
	"context"

	infrarepo "github.com/amirasaad/amanah/infra/repository"
	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a user repository using the provided *gorm.DB.
func New(db *gorm.DB) user.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.UserCreate) error {
	u := User{
		ID:              create.ID,
		Username:        create.Username,
		Password:        create.Password,
		Name:            create.Name,
		DefaultCurrency: create.DefaultCurrency,
	}
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&u).Error
	})
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, infrarepo.NotFoundAs(err, domain.ErrNotFound)
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, infrarepo.NotFoundAs(err, domain.ErrNotFound)
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Count(&n).Error
	if err != nil {
		return false, infrarepo.MapGormErrorToDomain(err)
	}
	return n > 0, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.DefaultCurrency != nil {
		updates["default_currency"] = *update.DefaultCurrency
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates)
	return infrarepo.AffectedOrNotFound(res, domain.ErrNotFound)
}

func mapModelToDTO(u *User) *dto.UserRead {
	return &dto.UserRead{
		ID:              u.ID,
		Username:        u.Username,
		Name:            u.Name,
		DefaultCurrency: u.DefaultCurrency,
		HashedPassword:  u.Password,
		CreatedAt:       u.CreatedAt,
	}
}
