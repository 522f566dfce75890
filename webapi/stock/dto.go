package stock

import (
	"time"

	"github.com/amirasaad/amanah/pkg/dto"
	"github.com/shopspring/decimal"
)

//revive:disable

// CreateStockRequest represents the request body for recording a holding.
type CreateStockRequest struct {
	Name  string          `json:"name" validate:"required,max=100"`
	Value decimal.Decimal `json:"value"`
	Notes string          `json:"notes" validate:"max=1000"`
}

// UpdateStockRequest carries the holding fields to change. Omitted fields are kept.
type UpdateStockRequest struct {
	Name  *string          `json:"name" validate:"omitempty,max=100"`
	Value *decimal.Decimal `json:"value"`
	Notes *string          `json:"notes" validate:"omitempty,max=1000"`
}

// StockDTO is the API response representation of a holding.
type StockDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Value     string `json:"value"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func ToStockDTO(s *dto.StockRead) *StockDTO {
	return &StockDTO{
		ID:        s.ID.String(),
		Name:      s.Name,
		Value:     s.Value.StringFixed(2),
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

func ToStockDTOs(stocks []*dto.StockRead) []*StockDTO {
	out := make([]*StockDTO, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, ToStockDTO(s))
	}
	return out
}
