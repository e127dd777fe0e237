package domain

// Notification bus topics. Publishers and subscribers agree on these names.
const (
	TopicPendingOrder = "pending-order"
	TopicCookedOrder  = "cooked-order"
	TopicOrderUpdated = "order-updated"
)

// PendingOrderEvent carries the restaurant owner's identity alongside the
// order so pending-order streams can be filtered per connected owner.
type PendingOrderEvent struct {
	Order   Order `json:"order"`
	OwnerID int64 `json:"owner_id"`
}
