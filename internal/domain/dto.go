package domain

type CreateOrderItemInput struct {
	DishID  int64        `json:"dish_id"`
	Options []ItemOption `json:"options,omitempty"`
}

type CreateOrderRequest struct {
	RestaurantID int64                  `json:"restaurant_id"`
	Items        []CreateOrderItemInput `json:"items"`
}

type CreateOrderResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	OrderID int64  `json:"order_id,omitempty"`
}

type GetOrdersResponse struct {
	OK     bool    `json:"ok"`
	Error  string  `json:"error,omitempty"`
	Orders []Order `json:"orders,omitempty"`
}

type GetOrderResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Order *Order `json:"order,omitempty"`
}

type EditOrderRequest struct {
	Status OrderStatus `json:"status"`
}

// Result is the envelope for mutations that return no payload.
type Result struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
