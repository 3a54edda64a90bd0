package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"fooddelivery/internal/mw"
	"fooddelivery/internal/order"
	"fooddelivery/internal/service"
	"fooddelivery/internal/session"
	"fooddelivery/internal/transition"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}

// decodeBody reads a JSON body into v and validates it. It writes the error
// response itself and reports whether the handler may continue.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return false
	}
	return true
}

func sessionFor(reg *session.Registry, w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	customerID, ok := mw.CustomerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return nil, false
	}
	return reg.Get(customerID), true
}

func writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		apiErr *service.APIError
		verrs  validator.ValidationErrors
	)

	switch {
	case errors.Is(err, transition.ErrMalformedToken), errors.Is(err, transition.ErrUnknownAction):
		writeError(w, http.StatusBadRequest, "invalid_token", err.Error())
	case errors.Is(err, session.ErrUnknownMenuItem):
		writeError(w, http.StatusNotFound, "unknown_item", err.Error())
	case errors.Is(err, service.ErrDeliveryNotFound):
		writeError(w, http.StatusNotFound, "delivery_not_found", err.Error())
	case errors.As(err, &verrs), errors.Is(err, order.ErrNegativePrice), errors.Is(err, session.ErrInvalidTip):
		writeError(w, http.StatusUnprocessableEntity, "invalid_order", err.Error())
	case errors.As(err, &apiErr):
		writeError(w, http.StatusBadGateway, "backend_error", apiErr.Message)
	case errors.Is(err, order.ErrEmptyCatalog), errors.Is(err, order.ErrRandOutOfRange):
		slog.Error("order composition misconfigured", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	default:
		slog.Error("backend request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "backend_unavailable", err.Error())
	}
}
