package handlers

import (
	"encoding/json"
	"net/http"

	"food-delivery/internal/auth"
	"food-delivery/internal/common/logger"
	"food-delivery/internal/domain"
	"food-delivery/internal/orders/service"
)

type OrderHandler struct {
	service service.OrderServiceInterface
	lg      *logger.Logger
}

func NewOrderHandler(s service.OrderServiceInterface, lg *logger.Logger) *OrderHandler {
	return &OrderHandler{service: s, lg: lg}
}

// gate enforces the per-operation role gate on the authenticated caller.
func gate(w http.ResponseWriter, r *http.Request, op string) (domain.User, bool) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "unauthorized", "")
		return domain.User{}, false
	}
	if !auth.Allowed(op, user.Role) {
		writeProblem(w, http.StatusForbidden, "forbidden", "operation not allowed for your role")
		return domain.User{}, false
	}
	return user, true
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	customer, ok := gate(w, r, auth.OpCreateOrder)
	if !ok {
		return
	}
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if req.RestaurantID == 0 || len(req.Items) == 0 {
		writeProblem(w, http.StatusBadRequest, "bad_request", "restaurant_id and items are required")
		return
	}

	id, err := h.service.CreateOrder(r.Context(), customer, req)
	if err != nil {
		h.lg.Error("create_order_failed", err, map[string]any{"customer_id": customer.ID})
		code, msg := failure(err, "Cannot Create Order")
		writeJSON(w, code, domain.CreateOrderResponse{OK: false, Error: msg})
		return
	}
	writeJSON(w, http.StatusCreated, domain.CreateOrderResponse{OK: true, OrderID: id})
}

func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := gate(w, r, auth.OpGetOrders)
	if !ok {
		return
	}
	status, ok := statusFilter(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "bad_request", "unknown status filter")
		return
	}

	orders, err := h.service.GetOrders(r.Context(), user, status)
	if err != nil {
		h.lg.Error("get_orders_failed", err, map[string]any{"user_id": user.ID})
		code, msg := failure(err, "Cannot Get Orders")
		writeJSON(w, code, domain.GetOrdersResponse{OK: false, Error: msg})
		return
	}
	writeJSON(w, http.StatusOK, domain.GetOrdersResponse{OK: true, Orders: orders})
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := gate(w, r, auth.OpGetOrder)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}

	order, err := h.service.GetOrder(r.Context(), user, id)
	if err != nil {
		code, msg := failure(err, "Cannot Get Order")
		writeJSON(w, code, domain.GetOrderResponse{OK: false, Error: msg})
		return
	}
	writeJSON(w, http.StatusOK, domain.GetOrderResponse{OK: true, Order: &order})
}

func (h *OrderHandler) EditOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := gate(w, r, auth.OpEditOrder)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}
	var req domain.EditOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	if err := h.service.EditOrder(r.Context(), user, id, req.Status); err != nil {
		code, msg := failure(err, "Could Not Update Order")
		writeJSON(w, code, domain.Result{OK: false, Error: msg})
		return
	}
	writeJSON(w, http.StatusOK, domain.Result{OK: true})
}

func (h *OrderHandler) TakeOrder(w http.ResponseWriter, r *http.Request) {
	deliverer, ok := gate(w, r, auth.OpTakeOrder)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}

	if err := h.service.TakeOrder(r.Context(), deliverer, id); err != nil {
		code, msg := failure(err, "Could Not Take Order")
		writeJSON(w, code, domain.Result{OK: false, Error: msg})
		return
	}
	writeJSON(w, http.StatusOK, domain.Result{OK: true})
}
