package domain

type Restaurant struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}

type Dish struct {
	ID           int64        `json:"id"`
	RestaurantID int64        `json:"restaurant_id"`
	Name         string       `json:"name"`
	Price        float64      `json:"price"`
	Options      []DishOption `json:"options,omitempty"`
}

// DishOption with a non-zero Extra is a flat surcharge; otherwise the
// surcharge (if any) comes from the selected choice.
type DishOption struct {
	Name    string         `json:"name"`
	Extra   float64        `json:"extra,omitempty"`
	Choices []OptionChoice `json:"choices,omitempty"`
}

type OptionChoice struct {
	Name  string  `json:"name"`
	Extra float64 `json:"extra,omitempty"`
}
