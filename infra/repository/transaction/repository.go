package transaction

import (
	"context"

	infrarepo "github.com/amirasaad/amanah/infra/repository"
	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/pkg/money"
	repo "github.com/amirasaad/amanah/pkg/repository/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const joinedColumns = "transactions.*, categories.name AS category_name, categories.kind AS category_kind"

type repository struct {
	db *gorm.DB
}

// New creates a transaction repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create dto.TransactionCreate) error {
	amount, err := infrarepo.MinorUnits(create.Amount)
	if err != nil {
		return err
	}
	tx := Transaction{
		ID:                   create.ID,
		UserID:               create.UserID,
		Kind:                 create.Kind,
		SourceAccountID:      create.SourceAccountID,
		DestinationAccountID: create.DestinationAccountID,
		CategoryID:           create.CategoryID,
		Amount:               amount,
		Note:                 create.Note,
		Date:                 create.Date,
	}
	return infrarepo.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&tx).Error
	})
}

func (r *repository) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	update dto.TransactionUpdate,
) error {
	amount, err := infrarepo.MinorUnits(update.Amount)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"kind":                   update.Kind,
			"source_account_id":      update.SourceAccountID,
			"destination_account_id": update.DestinationAccountID,
			"category_id":            update.CategoryID,
			"amount":                 amount,
			"note":                   update.Note,
			"date":                   update.Date,
		})
	return infrarepo.AffectedOrNotFound(res, domain.ErrTransactionNotFound)
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("transactions").
		Select(joinedColumns).
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id")
}

func (r *repository) Get(ctx context.Context, userID, id uuid.UUID) (*dto.TransactionRead, error) {
	var row transactionRow
	err := r.joined(ctx).
		Where("transactions.id = ? AND transactions.user_id = ?", id, userID).
		Take(&row).Error
	if err != nil {
		return nil, infrarepo.NotFoundAs(err, domain.ErrTransactionNotFound)
	}
	return mapRowToDTO(&row), nil
}

func (r *repository) List(
	ctx context.Context,
	userID uuid.UUID,
	filter dto.TransactionFilter,
) ([]*dto.TransactionRead, error) {
	q := r.joined(ctx).Where("transactions.user_id = ?", userID)
	if filter.StartDate != nil {
		q = q.Where("transactions.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("transactions.date <= ?", *filter.EndDate)
	}
	if filter.CategoryID != nil {
		q = q.Where("transactions.category_id = ?", *filter.CategoryID)
	}
	if filter.AccountID != nil {
		q = q.Where(
			"transactions.source_account_id = ? OR transactions.destination_account_id = ?",
			*filter.AccountID, *filter.AccountID,
		)
	}

	var rows []transactionRow
	err := q.Order("transactions.date DESC, transactions.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	result := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapRowToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Transaction{})
	return infrarepo.AffectedOrNotFound(res, domain.ErrTransactionNotFound)
}

func (r *repository) CountByAccount(ctx context.Context, userID, accountID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("user_id = ? AND (source_account_id = ? OR destination_account_id = ?)", userID, accountID, accountID).
		Count(&n).Error
	return n, infrarepo.MapGormErrorToDomain(err)
}

func (r *repository) CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&n).Error
	return n, infrarepo.MapGormErrorToDomain(err)
}

func mapRowToDTO(row *transactionRow) *dto.TransactionRead {
	out := &dto.TransactionRead{
		ID:                   row.ID,
		UserID:               row.UserID,
		Kind:                 row.Kind,
		SourceAccountID:      row.SourceAccountID,
		DestinationAccountID: row.DestinationAccountID,
		CategoryID:           row.CategoryID,
		Amount:               money.FromMinor(row.Amount),
		Note:                 row.Note,
		Date:                 row.Date,
		CreatedAt:            row.CreatedAt,
	}
	if row.CategoryName != nil {
		out.CategoryName = *row.CategoryName
	}
	if row.CategoryKind != nil {
		out.CategoryKind = *row.CategoryKind
	}
	return out
}
