package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fooddelivery/internal/model"
	"fooddelivery/internal/session"
)

func writeDeliveries(w http.ResponseWriter, st session.State) {
	writeJSON(w, http.StatusOK, deliveriesResponse{
		Active:    toRows(st.Active),
		Completed: toRows(st.Completed),
		LastError: st.LastError,
	})
}

// ListDeliveriesHandler resyncs the session before answering.
func ListDeliveriesHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		st, err := s.Refresh(r.Context())
		if err != nil {
			writeSessionError(w, r, err)
			return
		}

		writeDeliveries(w, st)
	}
}

func GetDeliveryHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		d, err := s.Delivery(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			writeSessionError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, toRows([]model.DeliveryRecord{*d})[0])
	}
}

func DeliveryActionHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		var req actionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := s.Act(r.Context(), req.Token); err != nil {
			writeSessionError(w, r, err)
			return
		}

		writeDeliveries(w, s.Snapshot())
	}
}

func AssignDeliveryManHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		var req assignRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := s.AssignDeliveryMan(r.Context(), chi.URLParam(r, "orderId"), req.DeliveryManID); err != nil {
			writeSessionError(w, r, err)
			return
		}

		writeDeliveries(w, s.Snapshot())
	}
}

func SessionHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, s.Snapshot())
	}
}
