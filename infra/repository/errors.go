package repository

import (
	"errors"
	"fmt"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/money"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors.
// Traverses the error chain to find GORM errors; anything it does not
// recognise is wrapped in domain.ErrStorageFailure.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
		currentErr = errors.Unwrap(currentErr)
	}

	return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
}

// WrapError wraps a GORM operation and automatically maps errors.
//
// Usage:
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(&acct).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}

// NotFoundAs maps err like MapGormErrorToDomain but reports a missing row
// as notFound, so callers see which entity was absent.
func NotFoundAs(err error, notFound error) error {
	mapped := MapGormErrorToDomain(err)
	if errors.Is(mapped, domain.ErrNotFound) {
		return notFound
	}
	return mapped
}

// AffectedOrNotFound turns a zero-row write into notFound.
func AffectedOrNotFound(res *gorm.DB, notFound error) error {
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// MinorUnits converts d for storage. A value that does not fit the column is
// reported as domain.ErrInvalidAmount instead of being written wrapped.
func MinorUnits(d decimal.Decimal) (int64, error) {
	v, err := money.ToMinor(d)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidAmount, err)
	}
	return v, nil
}
