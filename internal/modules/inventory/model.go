package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a stock-keeping unit of one store, unique by (store, code).
type Item struct {
	ID        int64           `json:"id"`
	StoreID   uuid.UUID       `json:"store_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	PriceBuy  decimal.Decimal `json:"price_buy"`
	PriceSell decimal.Decimal `json:"price_sell"`
	Stock     int             `json:"stock"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ReceiveRequest registers a new item code with its opening stock.
type ReceiveRequest struct {
	Code string          `json:"code" validate:"required"`
	Name string          `json:"name" validate:"required"`
	Buy  decimal.Decimal `json:"buy" validate:"gte=0"`
	Sell decimal.Decimal `json:"sell" validate:"gte=0"`
	Qty  int             `json:"qty" validate:"gte=0"`
}

// RestockRequest adds quantity to an item that already exists.
type RestockRequest struct {
	Code string `json:"code" validate:"required"`
	Qty  int    `json:"qty" validate:"min=1"`
}

// EditRequest overwrites every mutable field of an item.
type EditRequest struct {
	ID   int64           `json:"id" validate:"required"`
	Code string          `json:"code" validate:"required"`
	Name string          `json:"name" validate:"required"`
	Buy  decimal.Decimal `json:"buy" validate:"gte=0"`
	Sell decimal.Decimal `json:"sell" validate:"gte=0"`
	Qty  int             `json:"qty" validate:"gte=0"`
}
