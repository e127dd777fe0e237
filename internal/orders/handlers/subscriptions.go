package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"food-delivery/internal/auth"
	"food-delivery/internal/common/logger"
	"food-delivery/internal/domain"
	"food-delivery/internal/pubsub"
)

// StreamHandler serves the live subscription endpoints as server-sent
// events. Each connection is an independent bus subscriber; its filter runs
// against the connected user's identity for every incoming event.
type StreamHandler struct {
	bus *pubsub.Bus
	lg  *logger.Logger
}

func NewStreamHandler(bus *pubsub.Bus, lg *logger.Logger) *StreamHandler {
	return &StreamHandler{bus: bus, lg: lg}
}

// PendingOrders delivers new orders of restaurants the connected owner owns.
func (h *StreamHandler) PendingOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := gate(w, r, auth.OpStreamPending)
	if !ok {
		return
	}
	h.stream(w, r, domain.TopicPendingOrder, func(payload any) (any, bool) {
		ev, ok := payload.(domain.PendingOrderEvent)
		if !ok || ev.OwnerID != user.ID {
			return nil, false
		}
		return ev.Order, true
	})
}

// CookedOrders delivers every cooked order to every connected deliverer.
func (h *StreamHandler) CookedOrders(w http.ResponseWriter, r *http.Request) {
	_, ok := gate(w, r, auth.OpStreamCooked)
	if !ok {
		return
	}
	h.stream(w, r, domain.TopicCookedOrder, func(payload any) (any, bool) {
		order, ok := payload.(domain.Order)
		return order, ok
	})
}

// OrderUpdates delivers updates for one order to its customer, deliverer or
// restaurant owner.
func (h *StreamHandler) OrderUpdates(w http.ResponseWriter, r *http.Request) {
	user, ok := gate(w, r, auth.OpStreamUpdates)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "bad_request", "invalid order id")
		return
	}
	h.stream(w, r, domain.TopicOrderUpdated, func(payload any) (any, bool) {
		order, ok := payload.(domain.Order)
		if !ok || order.ID != id {
			return nil, false
		}
		involved := order.CustomerID == user.ID ||
			order.OwnerID == user.ID ||
			(order.DeliveryID != nil && *order.DeliveryID == user.ID)
		if !involved {
			return nil, false
		}
		return order, true
	})
}

func (h *StreamHandler) stream(w http.ResponseWriter, r *http.Request, topic string, filter func(any) (any, bool)) {
	fl, ok := w.(http.Flusher)
	if !ok {
		writeProblem(w, http.StatusInternalServerError, "streaming_unsupported", "")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fl.Flush()

	// Subscription lifetime is the request context: client disconnect
	// tears the subscriber down, no server-side signal needed.
	events := h.bus.Subscribe(r.Context(), topic)
	for payload := range events {
		out, ok := filter(payload)
		if !ok {
			continue
		}
		body, err := json.Marshal(out)
		if err != nil {
			h.lg.Error("stream_encode_failed", err, map[string]any{"topic": topic})
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", body)
		fl.Flush()
	}
}
