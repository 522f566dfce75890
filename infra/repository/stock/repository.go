package stock

import (
	"context"

	infrarepo "github.com/amirasaad/amanah/infra/repository"
	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/money"
	repo "github.com/amirasaad/amanah/pkg/repository/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a stock holding repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.StockCreate) error {
	value, err := infrarepo.MinorUnits(create.Value)
	if err != nil {
		return err
	}
	s := Stock{
		ID:     create.ID,
		UserID: create.UserID,
		Name:   create.Name,
		Value:  value,
		Notes:  create.Notes,
	}
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&s).Error
	})
}

func (r *repository) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update dto.StockUpdate,
) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Value != nil {
		value, err := infrarepo.MinorUnits(*update.Value)
		if err != nil {
			return err
		}
		updates["value"] = value
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&Stock{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	return infrarepo.AffectedOrNotFound(res, domain.ErrStockNotFound)
}

func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.StockRead, error) {
	var s Stock
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&s).Error
	if err != nil {
		return nil, infrarepo.NotFoundAs(err, domain.ErrStockNotFound)
	}
	return mapModelToDTO(&s), nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.StockRead, error) {
	var stocks []Stock
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&stocks).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	result := make([]*dto.StockRead, 0, len(stocks))
	for i := range stocks {
		result = append(result, mapModelToDTO(&stocks[i]))
	}
	return result, nil
}

func (r *repository) TotalValue(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Stock{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, infrarepo.MapGormErrorToDomain(err)
	}
	return money.FromMinor(total), nil
}

func (r *repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Stock{})
	return infrarepo.AffectedOrNotFound(res, domain.ErrStockNotFound)
}

func mapModelToDTO(s *Stock) *dto.StockRead {
	return &dto.StockRead{
		ID:        s.ID,
		UserID:    s.UserID,
		Name:      s.Name,
		Value:     money.FromMinor(s.Value),
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
