package handlers

import (
	"net/http"

	"food-delivery/internal/common/logger"
	"food-delivery/internal/orders/service"
	"food-delivery/internal/pubsub"
)

type Handler struct {
	Orders  *OrderHandler
	Streams *StreamHandler
}

func New(svc service.OrderServiceInterface, bus *pubsub.Bus, lg *logger.Logger) *Handler {
	return &Handler{
		Orders:  NewOrderHandler(svc, lg),
		Streams: NewStreamHandler(bus, lg),
	}
}

// Routes builds the gateway mux; mw is the authentication middleware wrapped
// around every endpoint.
func (h *Handler) Routes(mw func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /orders", h.Orders.CreateOrder)
	mux.HandleFunc("GET /orders", h.Orders.GetOrders)
	mux.HandleFunc("GET /orders/{id}", h.Orders.GetOrder)
	mux.HandleFunc("PATCH /orders/{id}/status", h.Orders.EditOrder)
	mux.HandleFunc("POST /orders/{id}/take", h.Orders.TakeOrder)

	mux.HandleFunc("GET /streams/orders/pending", h.Streams.PendingOrders)
	mux.HandleFunc("GET /streams/orders/cooked", h.Streams.CookedOrders)
	mux.HandleFunc("GET /streams/orders/{id}/updates", h.Streams.OrderUpdates)

	return mw(mux)
}
