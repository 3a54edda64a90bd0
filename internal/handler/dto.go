package handler

import (
	"github.com/shopspring/decimal"

	"fooddelivery/internal/model"
	"fooddelivery/internal/transition"
)

type addItemRequest struct {
	ID string `json:"id" validate:"required"`
}

type submitOrderRequest struct {
	Address string `json:"address" validate:"required"`
}

type actionRequest struct {
	Token string `json:"token" validate:"required"`
}

type tipRequest struct {
	Tip decimal.Decimal `json:"tip"`
}

type assignRequest struct {
	DeliveryManID string `json:"deliveryManId" validate:"required"`
}

type basketResponse struct {
	Items []model.BasketLine `json:"items"`
	Total decimal.Decimal    `json:"total"`
	Count int                `json:"count"`
}

type submitOrderResponse struct {
	OrderID string             `json:"orderId"`
	Order   model.OrderRequest `json:"order"`
}

type actionLink struct {
	Action transition.Action `json:"action"`
	Token  string            `json:"token"`
}

type deliveryRow struct {
	model.DeliveryRecord
	Actions []actionLink `json:"actions"`
}

type deliveriesResponse struct {
	Active    []deliveryRow `json:"active"`
	Completed []deliveryRow `json:"completed"`
	LastError string        `json:"lastError,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func toRows(records []model.DeliveryRecord) []deliveryRow {
	rows := make([]deliveryRow, len(records))
	for i, r := range records {
		actions := transition.Available(r.Status)
		links := make([]actionLink, len(actions))
		for j, a := range actions {
			links[j] = actionLink{Action: a, Token: transition.Encode(r.OrderID, a)}
		}
		rows[i] = deliveryRow{DeliveryRecord: r, Actions: links}
	}
	return rows
}
