package account

import (
	"context"
	"fmt"

	infrarepo "github.com/amirasaad/amanah/infra/repository"
	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/money"
	repo "github.com/amirasaad/amanah/pkg/repository/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a CQRS-style account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements account.Repository.
func (r *repository) Create(ctx context.Context, create dto.AccountCreate) error {
	acct, err := mapCreateDTOToModel(create)
	if err != nil {
		return err
	}
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&acct).Error
	})
}

// Update implements account.Repository.
func (r *repository) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update dto.AccountUpdate,
) error {
	updates, err := mapUpdateDTOToModel(update)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	return infrarepo.AffectedOrNotFound(res, domain.ErrAccountNotFound)
}

// Get implements account.Repository.
func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.AccountRead, error) {
	var acct Account
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&acct).Error
	if err != nil {
		return nil, infrarepo.NotFoundAs(err, domain.ErrAccountNotFound)
	}
	return mapModelToDTO(&acct), nil
}

// ListByUser implements account.Repository.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	var accts []Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&accts).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	result := make([]*dto.AccountRead, 0, len(accts))
	for i := range accts {
		result = append(result, mapModelToDTO(&accts[i]))
	}
	return result, nil
}

// AdjustBalance implements account.Repository. The increment runs in the
// database so concurrent writers cannot lose each other's updates. The row is
// only touched when the new balance stays within money.MaxBalance.
func (r *repository) AdjustBalance(
	ctx context.Context,
	userID, id uuid.UUID,
	delta decimal.Decimal,
) error {
	if !money.WithinLimit(delta, money.MaxBalance) {
		return fmt.Errorf("%w: balance change %s exceeds %s", domain.ErrInvalidAmount, delta, money.MaxBalance)
	}
	minor, err := infrarepo.MinorUnits(delta)
	if err != nil {
		return err
	}
	limit, err := infrarepo.MinorUnits(money.MaxBalance)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ? AND user_id = ?", id, userID).
		Where("current_balance + ? BETWEEN ? AND ?", minor, -limit, limit).
		UpdateColumn("current_balance", gorm.Expr("current_balance + ?", minor))
	if res.Error != nil {
		return infrarepo.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	err = r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	if err != nil {
		return infrarepo.MapGormErrorToDomain(err)
	}
	if count == 0 {
		return domain.ErrAccountNotFound
	}
	return fmt.Errorf("%w: balance would leave the range of %s", domain.ErrInvalidAmount, money.MaxBalance)
}

// Delete implements account.Repository.
func (r *repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Account{})
	return infrarepo.AffectedOrNotFound(res, domain.ErrAccountNotFound)
}

func mapCreateDTOToModel(create dto.AccountCreate) (Account, error) {
	initial, err := infrarepo.MinorUnits(create.InitialBalance)
	if err != nil {
		return Account{}, err
	}
	return Account{
		ID:             create.ID,
		UserID:         create.UserID,
		Name:           create.Name,
		Kind:           create.Kind,
		InitialBalance: initial,
		CurrentBalance: initial,
		Currency:       create.Currency,
	}, nil
}

func mapUpdateDTOToModel(update dto.AccountUpdate) (map[string]any, error) {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Kind != nil {
		updates["kind"] = *update.Kind
	}
	if update.Currency != nil {
		updates["currency"] = *update.Currency
	}
	if update.InitialBalance != nil {
		initial, err := infrarepo.MinorUnits(*update.InitialBalance)
		if err != nil {
			return nil, err
		}
		updates["initial_balance"] = initial
	}
	return updates, nil
}

func mapModelToDTO(acct *Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:             acct.ID,
		UserID:         acct.UserID,
		Name:           acct.Name,
		Kind:           acct.Kind,
		InitialBalance: money.FromMinor(acct.InitialBalance),
		CurrentBalance: money.FromMinor(acct.CurrentBalance),
		Currency:       acct.Currency,
		CreatedAt:      acct.CreatedAt,
	}
}
