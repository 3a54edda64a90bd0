package handler

import (
	"net/http"

	"fooddelivery/internal/session"
)

func SearchFoodsHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := sessionFor(reg, w, r)
		if !ok {
			return
		}

		items, err := s.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeSessionError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}
