package transaction

import (
	"time"

	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/amirasaad/amanah/webapi/common"
	"github.com/shopspring/decimal"
)

//revive:disable

// CreateTransactionRequest represents the request body for recording a transaction.
// Income needs a destination, expense a source, transfer both.
type CreateTransactionRequest struct {
	Kind                 string          `json:"kind" validate:"required,oneof=income expense transfer"`
	SourceAccountID      *string         `json:"source_account_id" validate:"omitempty,uuid"`
	DestinationAccountID *string         `json:"destination_account_id" validate:"omitempty,uuid"`
	CategoryID           *string         `json:"category_id" validate:"omitempty,uuid"`
	Amount               decimal.Decimal `json:"amount"`
	Note                 string          `json:"note" validate:"max=500"`
	Date                 *string         `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateTransactionRequest carries the transaction fields to change. Omitted fields are kept.
type UpdateTransactionRequest struct {
	Kind                 *string          `json:"kind" validate:"omitempty,oneof=income expense transfer"`
	SourceAccountID      *string          `json:"source_account_id" validate:"omitempty,uuid"`
	DestinationAccountID *string          `json:"destination_account_id" validate:"omitempty,uuid"`
	CategoryID           *string          `json:"category_id" validate:"omitempty,uuid"`
	Amount               *decimal.Decimal `json:"amount"`
	Note                 *string          `json:"note" validate:"omitempty,max=500"`
	Date                 *string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// TransactionDTO is the API response representation of a transaction.
type TransactionDTO struct {
	ID                   string  `json:"id"`
	Kind                 string  `json:"kind"`
	SourceAccountID      *string `json:"source_account_id,omitempty"`
	DestinationAccountID *string `json:"destination_account_id,omitempty"`
	CategoryID           *string `json:"category_id,omitempty"`
	CategoryName         string  `json:"category_name,omitempty"`
	CategoryKind         string  `json:"category_kind,omitempty"`
	Amount               string  `json:"amount"`
	Note                 string  `json:"note,omitempty"`
	Date                 string  `json:"date"`
	CreatedAt            string  `json:"created_at"`
}

func ToTransactionDTO(tx *dto.TransactionRead) *TransactionDTO {
	return &TransactionDTO{
		ID:                   tx.ID.String(),
		Kind:                 tx.Kind,
		SourceAccountID:      common.FormatUUID(tx.SourceAccountID),
		DestinationAccountID: common.FormatUUID(tx.DestinationAccountID),
		CategoryID:           common.FormatUUID(tx.CategoryID),
		CategoryName:         tx.CategoryName,
		CategoryKind:         tx.CategoryKind,
		Amount:               tx.Amount.StringFixed(2),
		Note:                 tx.Note,
		Date:                 tx.Date.Format(common.DateLayout),
		CreatedAt:            tx.CreatedAt.Format(time.RFC3339),
	}
}

func ToTransactionDTOs(txs []*dto.TransactionRead) []*TransactionDTO {
	out := make([]*TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, ToTransactionDTO(tx))
	}
	return out
}
