package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"food-delivery/internal/domain"
	"food-delivery/internal/orders/service"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeProblem is for transport-level failures (auth, malformed requests),
// kept separate from the {ok, error} operation envelope.
func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}

// failure maps a service error to an HTTP status and the user-facing message
// of the operation envelope. fallback covers unexpected repository errors.
func failure(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, service.ErrRestaurantNotFound):
		return http.StatusNotFound, "Restaurant Not Found"
	case errors.Is(err, service.ErrDishNotFound):
		return http.StatusNotFound, "Dish Not Found"
	case errors.Is(err, service.ErrOrderNotFound):
		return http.StatusNotFound, "Order Not Found"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "You Cannot Access Someone Else's Order"
	case errors.Is(err, service.ErrAlreadyTaken):
		return http.StatusConflict, "This Order Is Already Taken by Another Driver"
	case errors.Is(err, service.ErrStatusNotAllowed):
		return http.StatusUnprocessableEntity, "You Cannot Set That Status"
	default:
		return http.StatusInternalServerError, fallback
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func statusFilter(r *http.Request) (*domain.OrderStatus, bool) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil, true
	}
	status := domain.OrderStatus(raw)
	if !status.Valid() {
		return nil, false
	}
	return &status, true
}
