package model

import "github.com/shopspring/decimal"

type Status string

const (
	StatusCreated           Status = "CREATED"
	StatusFoodInPreparation Status = "FOOD_IN_PREPARATION"
	StatusFoodReady         Status = "FOOD_READY"
	StatusFoodPicked        Status = "FOOD_PICKED"
	StatusFoodDelivered     Status = "FOOD_DELIVERED"
	StatusCanceled          Status = "CANCELED"
)

type DeliveryRecord struct {
	OrderID        string          `json:"orderId"`
	CustomerID     string          `json:"customerId"`
	RestaurantID   string          `json:"restaurantId"`
	DeliveryManID  *string         `json:"deliveryManId"`
	Status         Status          `json:"status"`
	Address        string          `json:"address"`
	Items          []BasketLine    `json:"items"`
	DeliveryCharge decimal.Decimal `json:"deliveryCharge"`
	Tip            decimal.Decimal `json:"tip"`
	Total          decimal.Decimal `json:"total"`
}
