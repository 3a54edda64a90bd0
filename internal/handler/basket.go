package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fooddelivery/internal/basket"
	"fooddelivery/internal/model"
	"fooddelivery/internal/session"
)

func newBasketResponse(lines []model.BasketLine) basketResponse {
	return basketResponse{
		Items: lines,
		Total: basket.Total(lines),
		Count: basket.Count(lines),
	}
}

func GetBasketHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newBasketResponse(s.Snapshot().Basket))
	}
}

func AddBasketItemHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		var req addItemRequest
		if !decodeBody(w, r, &req) {
			return
		}

		lines, err := s.AddToBasket(req.ID)
		if err != nil {
			writeSessionError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, newBasketResponse(lines))
	}
}

func RemoveBasketItemHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		lines := s.RemoveFromBasket(chi.URLParam(r, "id"))
		writeJSON(w, http.StatusOK, newBasketResponse(lines))
	}
}
