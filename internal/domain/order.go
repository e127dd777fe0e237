package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCooking   OrderStatus = "cooking"
	StatusCooked    OrderStatus = "cooked"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCooking, StatusCooked, StatusPickedUp, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID           int64       `json:"id"`
	CustomerID   int64       `json:"customer_id"`
	RestaurantID int64       `json:"restaurant_id"`
	OwnerID      int64       `json:"owner_id"`
	DeliveryID   *int64      `json:"delivery_id,omitempty"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	Items        []OrderItem `json:"items,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID      int64        `json:"id"`
	OrderID int64        `json:"order_id"`
	DishID  int64        `json:"dish_id"`
	Options []ItemOption `json:"options,omitempty"`
}

// ItemOption is the customer's pick for one dish option: either the option
// alone (flat extra) or a named choice under it.
type ItemOption struct {
	Name   string `json:"name"`
	Choice string `json:"choice,omitempty"`
}
