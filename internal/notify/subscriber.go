package notify

import (
	"context"

	"food-delivery/internal/common/logger"
	"food-delivery/internal/connections/rabbitmq"
)

// RunSubscriber consumes relayed order events from the broker and logs them.
// Actual delivery channels (email, push) hang off this consumer and stay out
// of this repository.
func RunSubscriber(ctx context.Context, client *rabbitmq.Client) error {
	lg := logger.New("notification-subscriber")

	if err := Declare(client.Channel()); err != nil {
		return err
	}
	deliveries, err := client.Consume(NotificationsQueue, "notificator", 1)
	if err != nil {
		return err
	}

	lg.Info("consuming", map[string]any{"queue": NotificationsQueue})
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			lg.Info("notification_received", map[string]any{
				"routing_key": d.RoutingKey,
				"body":        string(d.Body),
			})
			_ = d.Ack(false)
		}
	}
}
