package auth

import "food-delivery/internal/domain"

// Operations guarded by the role gate. Every gateway endpoint names one.
const (
	OpCreateOrder   = "create_order"
	OpGetOrders     = "get_orders"
	OpGetOrder      = "get_order"
	OpEditOrder     = "edit_order"
	OpTakeOrder     = "take_order"
	OpStreamPending = "stream_pending_orders"
	OpStreamCooked  = "stream_cooked_orders"
	OpStreamUpdates = "stream_order_updates"
)

// anyRole marks operations open to every authenticated caller.
var anyRole = []domain.UserRole{domain.RoleClient, domain.RoleOwner, domain.RoleDelivery}

var roleGate = map[string][]domain.UserRole{
	OpCreateOrder:   {domain.RoleClient},
	OpGetOrders:     anyRole,
	OpGetOrder:      anyRole,
	OpEditOrder:     {domain.RoleOwner, domain.RoleDelivery},
	OpTakeOrder:     {domain.RoleDelivery},
	OpStreamPending: {domain.RoleOwner},
	OpStreamCooked:  {domain.RoleDelivery},
	OpStreamUpdates: anyRole,
}

// Allowed reports whether role may invoke op at all, independent of any
// specific order. Unknown operations are denied.
func Allowed(op string, role domain.UserRole) bool {
	for _, r := range roleGate[op] {
		if r == role {
			return true
		}
	}
	return false
}

// CanAccess is the object-level policy: a client sees only their own orders,
// a deliverer only orders assigned to them, an owner only orders placed at
// restaurants they own.
func CanAccess(u domain.User, o domain.Order) bool {
	switch u.Role {
	case domain.RoleClient:
		return u.ID == o.CustomerID
	case domain.RoleDelivery:
		return o.DeliveryID != nil && u.ID == *o.DeliveryID
	case domain.RoleOwner:
		return u.ID == o.OwnerID
	}
	return false
}
