package report

import "github.com/shopspring/decimal"

// DailyStat aggregates one calendar day (UTC) of sales.
type DailyStat struct {
	Day      string          `json:"day"`
	Receipts int             `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
	Profit   decimal.Decimal `json:"profit"`
}

// SellerStat aggregates all sales rung up by one seller.
type SellerStat struct {
	SellerName string          `json:"seller_name"`
	Receipts   int             `json:"count"`
	Revenue    decimal.Decimal `json:"revenue"`
	Profit     decimal.Decimal `json:"profit"`
}
