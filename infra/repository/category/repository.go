package category

import (
	"context"

	infrarepo "github.com/amirasaad/amanah/infra/repository"
	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/dto"
	repo "github.com/amirasaad/amanah/pkg/repository/category"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a category repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.CategoryCreate) error {
	c := mapCreateDTOToModel(create)
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&c).Error
	})
}

func (r *repository) CreateMany(ctx context.Context, creates []dto.CategoryCreate) error {
	if len(creates) == 0 {
		return nil
	}
	rows := make([]Category, 0, len(creates))
	for _, c := range creates {
		rows = append(rows, mapCreateDTOToModel(c))
	}
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&rows).Error
	})
}

func (r *repository) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update dto.CategoryUpdate,
) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Kind != nil {
		updates["kind"] = *update.Kind
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&Category{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	return infrarepo.AffectedOrNotFound(res, domain.ErrCategoryNotFound)
}

func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.CategoryRead, error) {
	var c Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&c).Error
	if err != nil {
		return nil, infrarepo.NotFoundAs(err, domain.ErrCategoryNotFound)
	}
	return mapModelToDTO(&c), nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	kind string,
) ([]*dto.CategoryRead, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var cats []Category
	if err := q.Order("name ASC").Find(&cats).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	result := make([]*dto.CategoryRead, 0, len(cats))
	for i := range cats {
		result = append(result, mapModelToDTO(&cats[i]))
	}
	return result, nil
}

func (r *repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Category{})
	return infrarepo.AffectedOrNotFound(res, domain.ErrCategoryNotFound)
}

func mapCreateDTOToModel(create dto.CategoryCreate) Category {
	return Category{
		ID:     create.ID,
		UserID: create.UserID,
		Name:   create.Name,
		Kind:   create.Kind,
	}
}

func mapModelToDTO(c *Category) *dto.CategoryRead {
	return &dto.CategoryRead{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Kind:      c.Kind,
		CreatedAt: c.CreatedAt,
	}
}
