package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ZakatRecordRead is a stored zakat calculation.
type ZakatRecordRead struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	TotalAssets decimal.Decimal
	NetAssets   decimal.Decimal
	NisabValue  decimal.Decimal
	NisabBasis  string
	ZakatDue    decimal.Decimal
	IsDue       bool
	Inputs      json.RawMessage
	Date        time.Time
	CreatedAt   time.Time
}

// ZakatRecordCreate is a DTO for appending a zakat calculation.
type ZakatRecordCreate struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	TotalAssets decimal.Decimal
	NetAssets   decimal.Decimal
	NisabValue  decimal.Decimal
	NisabBasis  string
	ZakatDue    decimal.Decimal
	IsDue       bool
	Inputs      json.RawMessage
	Date        time.Time
}

// ZakatCommand is the service input for a calculation. Nil fields fall back
// to account balances, cached prices or configured defaults.
type ZakatCommand struct {
	UserID       uuid.UUID
	ManualCash   *decimal.Decimal
	GoldWeight   *decimal.Decimal
	GoldPrice    *decimal.Decimal
	SilverWeight *decimal.Decimal
	SilverPrice  *decimal.Decimal
	Investments  *decimal.Decimal
	Debts        *decimal.Decimal
	NisabBasis   string
}

// ZakatResult is the rounded outcome of a calculation with its stored record.
// Record is nil when persisting the calculation failed.
type ZakatResult struct {
	TotalAssets      decimal.Decimal
	TotalCashAndBank decimal.Decimal
	NetAssets        decimal.Decimal
	NisabValue       decimal.Decimal
	NisabBasis       string
	ZakatDue         decimal.Decimal
	IsDue            bool
	Record           *ZakatRecordRead
}

// NetWorth sums account balances by account kind. TotalStocks is the value
// of the user's holdings and is not part of NetWorth.
type NetWorth struct {
	NetWorth    decimal.Decimal
	TotalCash   decimal.Decimal
	TotalBank   decimal.Decimal
	TotalStocks decimal.Decimal
}
