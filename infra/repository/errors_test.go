package repository

import (
	"errors"
	"testing"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/amirasaad/amanah/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "nil error returns nil",
			input:    nil,
			expected: nil,
		},
		{
			name:     "duplicate key error maps to ErrAlreadyExists",
			input:    gorm.ErrDuplicatedKey,
			expected: domain.ErrAlreadyExists,
		},
		{
			name:     "record not found error maps to ErrNotFound",
			input:    gorm.ErrRecordNotFound,
			expected: domain.ErrNotFound,
		},
		{
			name:     "driver error maps to ErrStorageFailure",
			input:    errors.New("connection reset by peer"),
			expected: domain.ErrStorageFailure,
		},
		{
			name:     "wrapped duplicate key error maps correctly",
			input:    errors.Join(errors.New("outer error"), gorm.ErrDuplicatedKey),
			expected: domain.ErrAlreadyExists,
		},
		{
			name:     "wrapped record not found error maps correctly",
			input:    errors.Join(errors.New("outer error"), gorm.ErrRecordNotFound),
			expected: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := MapGormErrorToDomain(tt.input)
			if tt.expected == nil {
				assert.NoError(t, result)
				return
			}
			assert.ErrorIs(t, result, tt.expected)
		})
	}
}

func TestStorageFailureKeepsDriverMessage(t *testing.T) {
	err := MapGormErrorToDomain(errors.New("disk full"))
	require.ErrorIs(t, err, domain.ErrStorageFailure)
	assert.Contains(t, err.Error(), "disk full")
}

func TestNotFoundAs(t *testing.T) {
	assert.Equal(t, domain.ErrAccountNotFound, NotFoundAs(gorm.ErrRecordNotFound, domain.ErrAccountNotFound))
	assert.ErrorIs(t, NotFoundAs(errors.New("boom"), domain.ErrAccountNotFound), domain.ErrStorageFailure)
	assert.NoError(t, NotFoundAs(nil, domain.ErrAccountNotFound))
}

func TestWrapError(t *testing.T) {
	err := WrapError(func() error { return gorm.ErrDuplicatedKey })
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.NoError(t, WrapError(func() error { return nil }))
}

func TestMinorUnits(t *testing.T) {
	v, err := MinorUnits(decimal.RequireFromString("-12.34"))
	require.NoError(t, err)
	assert.Equal(t, int64(-1234), v)

	_, err = MinorUnits(decimal.RequireFromString("100000000000000000"))
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.ErrorIs(t, err, money.ErrOutOfRange)
}
