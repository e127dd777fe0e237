package service

import (
	"context"
	"errors"
	"fmt"

	"food-delivery/internal/auth"
	catalogrepo "food-delivery/internal/catalog/repository"
	"food-delivery/internal/common/logger"
	"food-delivery/internal/domain"
	"food-delivery/internal/orders/repository"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrDishNotFound       = errors.New("dish not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrForbidden          = errors.New("not your order")
	ErrAlreadyTaken       = errors.New("order already taken")
	ErrStatusNotAllowed   = errors.New("status not allowed for role")
)

// Status targets each role may set. Only the target is checked, not the
// current status: the source system never validated edges either.
var editTargets = map[domain.UserRole][]domain.OrderStatus{
	domain.RoleOwner:    {domain.StatusCooking, domain.StatusCooked, domain.StatusCancelled},
	domain.RoleDelivery: {domain.StatusPickedUp, domain.StatusDelivered},
}

// PublisherInterface is the slice of the notification bus the service needs.
type PublisherInterface interface {
	Publish(topic string, payload any)
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, customer domain.User, req domain.CreateOrderRequest) (int64, error)
	GetOrders(ctx context.Context, user domain.User, status *domain.OrderStatus) ([]domain.Order, error)
	GetOrder(ctx context.Context, user domain.User, id int64) (domain.Order, error)
	EditOrder(ctx context.Context, user domain.User, id int64, status domain.OrderStatus) error
	TakeOrder(ctx context.Context, deliverer domain.User, id int64) error
}

type OrderService struct {
	orders  repository.OrderRepositoryInterface
	catalog catalogrepo.CatalogRepositoryInterface
	bus     PublisherInterface
	lg      *logger.Logger
}

func NewOrderService(
	orders repository.OrderRepositoryInterface,
	catalog catalogrepo.CatalogRepositoryInterface,
	bus PublisherInterface,
	lg *logger.Logger,
) *OrderService {
	return &OrderService{orders: orders, catalog: catalog, bus: bus, lg: lg}
}

// CreateOrder prices the cart against the catalog, persists order and items
// atomically, and only then announces the new pending order.
func (s *OrderService) CreateOrder(ctx context.Context, customer domain.User, req domain.CreateOrderRequest) (int64, error) {
	restaurant, ok, err := s.catalog.GetRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return 0, fmt.Errorf("resolve restaurant: %w", err)
	}
	if !ok {
		return 0, ErrRestaurantNotFound
	}

	var (
		total float64
		items = make([]domain.OrderItem, 0, len(req.Items))
	)
	for _, in := range req.Items {
		dish, ok, err := s.catalog.GetDish(ctx, in.DishID)
		if err != nil {
			return 0, fmt.Errorf("resolve dish: %w", err)
		}
		if !ok {
			return 0, ErrDishNotFound
		}
		price := dish.Price
		for _, sel := range in.Options {
			price += optionExtra(dish, sel)
		}
		total += price
		items = append(items, domain.OrderItem{DishID: dish.ID, Options: in.Options})
	}

	order := domain.Order{
		CustomerID:   customer.ID,
		RestaurantID: restaurant.ID,
		OwnerID:      restaurant.OwnerID,
		Total:        total,
		Status:       domain.StatusPending,
		Items:        items,
	}
	id, err := s.orders.CreateOrderTx(ctx, order)
	if err != nil {
		return 0, fmt.Errorf("save order: %w", err)
	}
	order.ID = id
	for i := range order.Items {
		order.Items[i].OrderID = id
	}

	s.bus.Publish(domain.TopicPendingOrder, domain.PendingOrderEvent{
		Order:   order,
		OwnerID: restaurant.OwnerID,
	})
	s.lg.Info("order_created", map[string]any{
		"order_id": id, "customer_id": customer.ID, "total": total,
	})
	return id, nil
}

// optionExtra resolves one selected option against the dish's catalog
// options: a flat-extra option contributes its extra, otherwise the matching
// named choice contributes its own. Unmatched selections contribute nothing.
func optionExtra(dish domain.Dish, sel domain.ItemOption) float64 {
	for _, opt := range dish.Options {
		if opt.Name != sel.Name {
			continue
		}
		if opt.Extra != 0 {
			return opt.Extra
		}
		for _, c := range opt.Choices {
			if c.Name == sel.Choice {
				return c.Extra
			}
		}
		return 0
	}
	return 0
}

func (s *OrderService) GetOrders(ctx context.Context, user domain.User, status *domain.OrderStatus) ([]domain.Order, error) {
	orders, err := s.orders.ListOrders(ctx, user, status)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, user domain.User, id int64) (domain.Order, error) {
	order, ok, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("load order: %w", err)
	}
	if !ok {
		return domain.Order{}, ErrOrderNotFound
	}
	if !auth.CanAccess(user, order) {
		return domain.Order{}, ErrForbidden
	}
	return order, nil
}

func (s *OrderService) EditOrder(ctx context.Context, user domain.User, id int64, status domain.OrderStatus) error {
	if !status.Valid() {
		return ErrStatusNotAllowed
	}
	order, ok, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}
	if !ok {
		return ErrOrderNotFound
	}
	if !auth.CanAccess(user, order) {
		return ErrForbidden
	}
	if !targetAllowed(user.Role, status) {
		return ErrStatusNotAllowed
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	order.Status = status

	if user.Role == domain.RoleOwner && status == domain.StatusCooked {
		s.bus.Publish(domain.TopicCookedOrder, order)
	}
	s.bus.Publish(domain.TopicOrderUpdated, order)

	s.lg.Info("order_status_changed", map[string]any{
		"order_id": id, "status": string(status), "by": user.ID,
	})
	return nil
}

func (s *OrderService) TakeOrder(ctx context.Context, deliverer domain.User, id int64) error {
	order, ok, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("load order: %w", err)
	}
	if !ok {
		return ErrOrderNotFound
	}
	if order.DeliveryID != nil {
		return ErrAlreadyTaken
	}

	claimed, err := s.orders.ClaimOrder(ctx, id, deliverer.ID)
	if err != nil {
		return fmt.Errorf("claim order: %w", err)
	}
	if !claimed {
		// lost the race to another deliverer between load and claim
		return ErrAlreadyTaken
	}
	order.DeliveryID = &deliverer.ID

	s.bus.Publish(domain.TopicOrderUpdated, order)
	s.lg.Info("order_taken", map[string]any{"order_id": id, "deliverer_id": deliverer.ID})
	return nil
}

func targetAllowed(role domain.UserRole, status domain.OrderStatus) bool {
	for _, st := range editTargets[role] {
		if st == status {
			return true
		}
	}
	return false
}
