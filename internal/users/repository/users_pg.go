package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"food-delivery/internal/domain"
)

type UserRepositoryInterface interface {
	GetUser(ctx context.Context, id int64) (domain.User, bool, error)
}

type UserRepository struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) GetUser(ctx context.Context, id int64) (domain.User, bool, error) {
	var u domain.User
	err := r.db.QueryRow(ctx,
		`SELECT id, email, role FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("select user: %w", err)
	}
	return u, true, nil
}
