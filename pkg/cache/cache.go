package cache

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Metal identifies a precious metal with a per-gram price.
type Metal string

const (
	Gold   Metal = "gold"
	Silver Metal = "silver"
)

// MetalPrice is the last known price of a metal.
type MetalPrice struct {
	Metal        Metal           `json:"metal"`
	PricePerGram decimal.Decimal `json:"pricePerGram"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// MetalPriceCache remembers metal prices between zakat calculations.
// Get returns (nil, nil) on a miss.
type MetalPriceCache interface {
	Get(ctx context.Context, metal Metal) (*MetalPrice, error)
	Set(ctx context.Context, price *MetalPrice, ttl time.Duration) error
	Delete(ctx context.Context, metal Metal) error
}
