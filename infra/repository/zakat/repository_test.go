package zakat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDb, DriverName: "postgres"}),
		&gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestCreate_StoresMinorUnits(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)
	id, userID := uuid.New(), uuid.New()
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO "zakat_records"`).
		WithArgs(id, userID, int64(8000000), int64(8000000), int64(4898880), "silver", int64(200000), true, `{"cash":"100000"}`, date, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.Create(context.Background(), dto.ZakatRecordCreate{
		ID:          id,
		UserID:      userID,
		TotalAssets: decimal.NewFromInt(80000),
		NetAssets:   decimal.NewFromInt(80000),
		NisabValue:  decimal.RequireFromString("48988.80"),
		NisabBasis:  "silver",
		ZakatDue:    decimal.NewFromInt(2000),
		IsDue:       true,
		Inputs:      json.RawMessage(`{"cash":"100000"}`),
		Date:        date,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_NewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	r := New(db)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "zakat_records" WHERE user_id = \$1 ORDER BY date DESC, created_at DESC`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "zakat_due", "is_zakat_due"}).
			AddRow(uuid.NewString(), userID.String(), int64(122472), true))

	got, err := r.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1224.72", got[0].ZakatDue.StringFixed(2))
	assert.True(t, got[0].IsDue)
	assert.NoError(t, mock.ExpectationsWereMet())
}
