package model

import "github.com/shopspring/decimal"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MenuItem is a single search result returned by GET /foods.
type MenuItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PricePerItem decimal.Decimal `json:"pricePerItem"`
}

// BasketLine is a menu item with the number of times it was added.
type BasketLine struct {
	ID           string          `json:"id" validate:"required"`
	Name         string          `json:"name"`
	PricePerItem decimal.Decimal `json:"pricePerItem"`
	Amount       int             `json:"amount" validate:"gte=1"`
}
