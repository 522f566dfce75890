package zakat

import (
	"context"
	"encoding/json"

	infrarepo "github.com/amirasaad/amanah/infra/repository"
	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/money"
	repo "github.com/amirasaad/amanah/pkg/repository/zakat"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a zakat record repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.ZakatRecordCreate) error {
	var figures [4]int64
	for i, d := range []decimal.Decimal{create.TotalAssets, create.NetAssets, create.NisabValue, create.ZakatDue} {
		v, err := infrarepo.MinorUnits(d)
		if err != nil {
			return err
		}
		figures[i] = v
	}
	rec := Record{
		ID:          create.ID,
		UserID:      create.UserID,
		TotalAssets: figures[0],
		NetAssets:   figures[1],
		NisabValue:  figures[2],
		NisabBasis:  create.NisabBasis,
		ZakatDue:    figures[3],
		IsZakatDue:  create.IsDue,
		Inputs:      string(create.Inputs),
		Date:        create.Date,
	}
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&rec).Error
	})
}

func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.ZakatRecordRead, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rec).Error
	if err != nil {
		return nil, infrarepo.NotFoundAs(err, domain.ErrNotFound)
	}
	return mapModelToDTO(&rec), nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.ZakatRecordRead, error) {
	var recs []Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	result := make([]*dto.ZakatRecordRead, 0, len(recs))
	for i := range recs {
		result = append(result, mapModelToDTO(&recs[i]))
	}
	return result, nil
}

func mapModelToDTO(rec *Record) *dto.ZakatRecordRead {
	var inputs json.RawMessage
	if rec.Inputs != "" {
		inputs = json.RawMessage(rec.Inputs)
	}
	return &dto.ZakatRecordRead{
		ID:          rec.ID,
		UserID:      rec.UserID,
		TotalAssets: money.FromMinor(rec.TotalAssets),
		NetAssets:   money.FromMinor(rec.NetAssets),
		NisabValue:  money.FromMinor(rec.NisabValue),
		NisabBasis:  rec.NisabBasis,
		ZakatDue:    money.FromMinor(rec.ZakatDue),
		IsDue:       rec.IsZakatDue,
		Inputs:      inputs,
		Date:        rec.Date,
		CreatedAt:   rec.CreatedAt,
	}
}
