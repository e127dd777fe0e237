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

// CatalogRepositoryInterface is the read-only view of restaurants and dishes
// the order side needs. The catalog itself is maintained elsewhere.
type CatalogRepositoryInterface interface {
	GetRestaurant(ctx context.Context, id int64) (domain.Restaurant, bool, error)
	GetDish(ctx context.Context, id int64) (domain.Dish, bool, error)
}

type CatalogRepository struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *CatalogRepository { return &CatalogRepository{db: db} }

func (r *CatalogRepository) GetRestaurant(ctx context.Context, id int64) (domain.Restaurant, bool, error) {
	var rest domain.Restaurant
	err := r.db.QueryRow(ctx,
		`SELECT id, name, owner_id FROM restaurants WHERE id = $1`, id,
	).Scan(&rest.ID, &rest.Name, &rest.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Restaurant{}, false, nil
	}
	if err != nil {
		return domain.Restaurant{}, false, fmt.Errorf("select restaurant: %w", err)
	}
	return rest, true, nil
}

func (r *CatalogRepository) GetDish(ctx context.Context, id int64) (domain.Dish, bool, error) {
	var (
		d          domain.Dish
		optionsRaw []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, restaurant_id, name, price, options FROM dishes WHERE id = $1`, id,
	).Scan(&d.ID, &d.RestaurantID, &d.Name, &d.Price, &optionsRaw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Dish{}, false, nil
	}
	if err != nil {
		return domain.Dish{}, false, fmt.Errorf("select dish: %w", err)
	}
	if len(optionsRaw) > 0 {
		if err := json.Unmarshal(optionsRaw, &d.Options); err != nil {
			return domain.Dish{}, false, fmt.Errorf("decode dish options: %w", err)
		}
	}
	return d, true, nil
}
