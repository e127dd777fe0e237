package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"food-delivery/internal/domain"
)

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) CreateOrderTx(ctx context.Context, order domain.Order) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var orderID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (customer_id, restaurant_id, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`,
		order.CustomerID, order.RestaurantID, order.Total, order.Status,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		options, err := json.Marshal(item.Options)
		if err != nil {
			return 0, fmt.Errorf("encode item options: %w", err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, dish_id, options, created_at)
			VALUES ($1, $2, $3, NOW())`,
			orderID, item.DishID, options,
		)
		if err != nil {
			return 0, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return orderID, nil
}

const orderColumns = `
	o.id, o.customer_id, o.restaurant_id, r.owner_id, o.delivery_id,
	o.total, o.status, o.created_at, o.updated_at`

func (r *OrderRepository) GetOrder(ctx context.Context, id int64) (domain.Order, bool, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.id = $1`, id)

	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, false, nil
	}
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("select order: %w", err)
	}

	items, err := r.orderItems(ctx, id)
	if err != nil {
		return domain.Order{}, false, err
	}
	order.Items = items
	return order, true, nil
}

func (r *OrderRepository) ListOrders(ctx context.Context, user domain.User, status *domain.OrderStatus) ([]domain.Order, error) {
	var cond string
	switch user.Role {
	case domain.RoleClient:
		cond = "o.customer_id = $1"
	case domain.RoleOwner:
		cond = "r.owner_id = $1"
	case domain.RoleDelivery:
		cond = "o.delivery_id = $1"
	default:
		return nil, fmt.Errorf("unknown role %q", user.Role)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE ` + cond
	args := []any{user.ID}
	if status != nil {
		query += " AND o.status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, order)
	}
	return out, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", id)
	}
	return nil
}

// ClaimOrder is a conditional update: the WHERE clause makes claiming atomic
// under concurrent deliverers, the first one wins and every other caller
// sees zero affected rows.
func (r *OrderRepository) ClaimOrder(ctx context.Context, id, delivererID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET delivery_id = $1, updated_at = NOW()
		WHERE id = $2 AND delivery_id IS NULL`,
		delivererID, id,
	)
	if err != nil {
		return false, fmt.Errorf("claim order: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OrderRepository) orderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, dish_id, options
		FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			item       domain.OrderItem
			optionsRaw []byte
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.DishID, &optionsRaw); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if len(optionsRaw) > 0 {
			if err := json.Unmarshal(optionsRaw, &item.Options); err != nil {
				return nil, fmt.Errorf("decode item options: %w", err)
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.RestaurantID, &o.OwnerID, &o.DeliveryID,
		&o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}
