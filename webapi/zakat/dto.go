package zakat

import (
	"encoding/json"
	"time"

	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/webapi/common"
	"github.com/shopspring/decimal"
)

//revive:disable

// CalculateRequest represents the request body for a zakat calculation.
// Omitted cash is taken from the account balances, omitted investments from
// the holdings and omitted prices from the price cache or configuration.
type CalculateRequest struct {
	ManualCash   *decimal.Decimal `json:"manual_cash"`
	GoldWeight   *decimal.Decimal `json:"gold_weight"`
	GoldPrice    *decimal.Decimal `json:"gold_price"`
	SilverWeight *decimal.Decimal `json:"silver_weight"`
	SilverPrice  *decimal.Decimal `json:"silver_price"`
	Investments  *decimal.Decimal `json:"investments"`
	Debts        *decimal.Decimal `json:"debts"`
	NisabBasis   string           `json:"nisab_basis" validate:"omitempty,oneof=gold silver"`
}

// ZakatDTO is the API representation of a calculation result.
type ZakatDTO struct {
	TotalAssets      string     `json:"total_assets"`
	TotalCashAndBank string     `json:"total_cash_and_bank"`
	NetAssets        string     `json:"net_assets"`
	NisabValue       string     `json:"nisab_value"`
	NisabBasis       string     `json:"nisab_basis"`
	ZakatDue         string     `json:"zakat_due"`
	IsDue            bool       `json:"is_due"`
	Record           *RecordDTO `json:"record,omitempty"`
}

// RecordDTO is a stored calculation.
type RecordDTO struct {
	ID          string          `json:"id"`
	TotalAssets string          `json:"total_assets"`
	NetAssets   string          `json:"net_assets"`
	NisabValue  string          `json:"nisab_value"`
	NisabBasis  string          `json:"nisab_basis"`
	ZakatDue    string          `json:"zakat_due"`
	IsDue       bool            `json:"is_due"`
	Inputs      json.RawMessage `json:"inputs,omitempty"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"created_at"`
}

// NetWorthDTO sums balances by account kind.
type NetWorthDTO struct {
	NetWorth    string `json:"net_worth"`
	TotalCash   string `json:"total_cash"`
	TotalBank   string `json:"total_bank"`
	TotalStocks string `json:"total_stocks"`
}

func ToZakatDTO(res *dto.ZakatResult) *ZakatDTO {
	out := &ZakatDTO{
		TotalAssets:      res.TotalAssets.StringFixed(2),
		TotalCashAndBank: res.TotalCashAndBank.StringFixed(2),
		NetAssets:        res.NetAssets.StringFixed(2),
		NisabValue:       res.NisabValue.StringFixed(2),
		NisabBasis:       res.NisabBasis,
		ZakatDue:         res.ZakatDue.StringFixed(2),
		IsDue:            res.IsDue,
	}
	if res.Record != nil {
		out.Record = ToRecordDTO(res.Record)
	}
	return out
}

func ToRecordDTO(r *dto.ZakatRecordRead) *RecordDTO {
	return &RecordDTO{
		ID:          r.ID.String(),
		TotalAssets: r.TotalAssets.StringFixed(2),
		NetAssets:   r.NetAssets.StringFixed(2),
		NisabValue:  r.NisabValue.StringFixed(2),
		NisabBasis:  r.NisabBasis,
		ZakatDue:    r.ZakatDue.StringFixed(2),
		IsDue:       r.IsDue,
		Inputs:      r.Inputs,
		Date:        r.Date.Format(common.DateLayout),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}

func ToNetWorthDTO(nw *dto.NetWorth) *NetWorthDTO {
	return &NetWorthDTO{
		NetWorth:    nw.NetWorth.StringFixed(2),
		TotalCash:   nw.TotalCash.StringFixed(2),
		TotalBank:   nw.TotalBank.StringFixed(2),
		TotalStocks: nw.TotalStocks.StringFixed(2),
	}
}
