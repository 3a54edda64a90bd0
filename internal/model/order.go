package model

import "github.com/shopspring/decimal"

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	CustomerID     string          `json:"customerId" validate:"required"`
	Address        string          `json:"address" validate:"required"`
	Items          []BasketLine    `json:"items" validate:"dive"`
	RestaurantID   string          `json:"restaurantId" validate:"required"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge"`
}

// OrderAck is returned by the backend once an order is accepted.
type OrderAck struct {
	OrderID string `json:"orderId"`
}
