package notify

import (
	"context"
	"encoding/json"

	"food-delivery/internal/common/logger"
	"food-delivery/internal/domain"
	"food-delivery/internal/pubsub"
)

// BrokerPublisherInterface is the slice of the RabbitMQ client the relay
// needs.
type BrokerPublisherInterface interface {
	PublishPersistent(ctx context.Context, exchange, key string, body []byte) error
}

// Relay bridges in-process bus events to the broker so out-of-process
// consumers (notification subscriber, analytics) can see them. Forwarding is
// best-effort: a broker failure is logged and never affects the request that
// produced the event.
type Relay struct {
	bus *pubsub.Bus
	pub BrokerPublisherInterface
	lg  *logger.Logger
}

func NewRelay(bus *pubsub.Bus, pub BrokerPublisherInterface, lg *logger.Logger) *Relay {
	return &Relay{bus: bus, pub: pub, lg: lg}
}

func (rl *Relay) Run(ctx context.Context) error {
	pending := rl.bus.Subscribe(ctx, domain.TopicPendingOrder)
	cooked := rl.bus.Subscribe(ctx, domain.TopicCookedOrder)
	updated := rl.bus.Subscribe(ctx, domain.TopicOrderUpdated)

	for {
		select {
		case <-ctx.Done():
			return nil
		case p, ok := <-pending:
			if !ok {
				return nil
			}
			rl.forward(ctx, KeyOrderPending, p)
		case p, ok := <-cooked:
			if !ok {
				return nil
			}
			rl.forward(ctx, KeyOrderCooked, p)
		case p, ok := <-updated:
			if !ok {
				return nil
			}
			rl.forward(ctx, KeyOrderUpdated, p)
		}
	}
}

func (rl *Relay) forward(ctx context.Context, key string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		rl.lg.Error("relay_encode_failed", err, map[string]any{"key": key})
		return
	}
	if err := rl.pub.PublishPersistent(ctx, OrdersExchange, key, body); err != nil {
		rl.lg.Error("relay_publish_failed", err, map[string]any{"key": key})
		return
	}
	rl.lg.Debug("event_relayed", map[string]any{"key": key})
}
