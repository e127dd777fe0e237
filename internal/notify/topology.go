package notify

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrdersExchange     = "orders_topic"
	NotificationsQueue = "notifications.q"
	DeadLetterExchange = "dlx"
	DeadLetterQueue    = "dlq"

	KeyOrderPending = "order.pending"
	KeyOrderCooked  = "order.cooked"
	KeyOrderUpdated = "order.updated"
)

// Declare sets up the broker topology. Idempotent, safe to call from both
// the publisher and the subscriber side.
func Declare(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(DeadLetterExchange, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(NotificationsQueue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    DeadLetterExchange,
		"x-dead-letter-routing-key": DeadLetterQueue,
	}); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(DeadLetterQueue, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(NotificationsQueue, "order.*", OrdersExchange, false, nil); err != nil {
		return err
	}
	return nil
}
