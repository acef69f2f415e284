package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one item of a checkout. Name and prices are taken from the
// inventory row at the moment of sale, not from the client.
type CartLine struct {
	Code string `json:"code" validate:"required"`
	Qty  int    `json:"qty" validate:"min=1"`
}

// CheckoutRequest is the payload for ringing up a receipt.
type CheckoutRequest struct {
	Cart       []CartLine      `json:"cart" validate:"dive"`
	SellerName string          `json:"sellerName"`
	PayCash    decimal.Decimal `json:"payCash" validate:"gte=0"`
	PayCard    decimal.Decimal `json:"payCard" validate:"gte=0"`
}

// SaleLine is one immutable row of the sales ledger.
type SaleLine struct {
	ID         int64           `json:"id"`
	StoreID    uuid.UUID       `json:"store_id"`
	ReceiptID  string          `json:"receipt_id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	PriceBuy   decimal.Decimal `json:"price_buy"`
	PriceSell  decimal.Decimal `json:"price_sell"`
	Qty        int             `json:"qty"`
	SellerName string          `json:"seller_name"`
	PayCash    decimal.Decimal `json:"pay_cash"`
	PayCard    decimal.Decimal `json:"pay_card"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Receipt groups the sale lines written by one checkout.
type Receipt struct {
	ReceiptID  string          `json:"receipt_id"`
	StoreID    uuid.UUID       `json:"store_id"`
	SellerName string          `json:"seller_name"`
	PayCash    decimal.Decimal `json:"pay_cash"`
	PayCard    decimal.Decimal `json:"pay_card"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	Lines      []*SaleLine     `json:"lines,omitempty"`
}

// Change is what the customer gets back; negative means underpaid.
func (r *Receipt) Change() decimal.Decimal {
	return r.PayCash.Add(r.PayCard).Sub(r.Total)
}
