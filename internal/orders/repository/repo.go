package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"food-delivery/internal/domain"
)

type OrderRepositoryInterface interface {
	// CreateOrderTx persists the order and all of its items in one
	// transaction. Either everything lands or nothing does.
	CreateOrderTx(ctx context.Context, order domain.Order) (int64, error)

	// GetOrder loads one order together with the owning restaurant's
	// owner id and the order items.
	GetOrder(ctx context.Context, id int64) (domain.Order, bool, error)

	// ListOrders returns the orders visible to user per their role,
	// optionally narrowed to one status.
	ListOrders(ctx context.Context, user domain.User, status *domain.OrderStatus) ([]domain.Order, error)

	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error

	// ClaimOrder assigns delivererID if and only if no deliverer is set
	// yet. Returns false when the order was already claimed.
	ClaimOrder(ctx context.Context, id, delivererID int64) (bool, error)
}

type Repository struct {
	OrderRepo OrderRepositoryInterface
}

func New(db *pgxpool.Pool) *Repository {
	return &Repository{OrderRepo: NewOrderRepository(db)}
}
