package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fooddelivery/internal/session"
)

func SubmitOrderHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		var req submitOrderRequest
		if !decodeBody(w, r, &req) {
			return
		}

		order, ack, err := s.SubmitOrder(r.Context(), req.Address)
		if err != nil {
			writeSessionError(w, r, err)
			return
		}

		writeJSON(w, http.StatusAccepted, submitOrderResponse{OrderID: ack.OrderID, Order: order})
	}
}

func AddTipHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		var req tipRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := s.AddTip(r.Context(), chi.URLParam(r, "orderId"), req.Tip); err != nil {
			writeSessionError(w, r, err)
			return
		}

		writeDeliveries(w, s.Snapshot())
	}
}
