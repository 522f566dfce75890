package account

import (
	"time"

	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/shopspring/decimal"
)

//revive:disable

// CreateAccountRequest represents the request body for opening an account.
type CreateAccountRequest struct {
	Name           string          `json:"name" validate:"required,max=100"`
	Kind           string          `json:"kind" validate:"required,oneof=cash bank"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Currency       string          `json:"currency" validate:"omitempty,len=3,alpha"`
}

// UpdateAccountRequest carries the account fields to change. Omitted fields are kept.
type UpdateAccountRequest struct {
	Name           *string          `json:"name" validate:"omitempty,max=100"`
	Kind           *string          `json:"kind" validate:"omitempty,oneof=cash bank"`
	Currency       *string          `json:"currency" validate:"omitempty,len=3,alpha"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
}

// AccountDTO is the API response representation of an account.
type AccountDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	InitialBalance string `json:"initial_balance"`
	CurrentBalance string `json:"current_balance"`
	Currency       string `json:"currency"`
	CreatedAt      string `json:"created_at"`
}

// ToAccountDTO maps an account read model to its API shape.
func ToAccountDTO(a *dto.AccountRead) *AccountDTO {
	return &AccountDTO{
		ID:             a.ID.String(),
		Name:           a.Name,
		Kind:           a.Kind,
		InitialBalance: a.InitialBalance.StringFixed(2),
		CurrentBalance: a.CurrentBalance.StringFixed(2),
		Currency:       a.Currency,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
}

// ToAccountDTOs maps a slice of account read models.
func ToAccountDTOs(accounts []*dto.AccountRead) []*AccountDTO {
	out := make([]*AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, ToAccountDTO(a))
	}
	return out
}
