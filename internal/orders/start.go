package orders

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"food-delivery/internal/auth"
	catalogrepo "food-delivery/internal/catalog/repository"
	"food-delivery/internal/common/httpx"
	"food-delivery/internal/common/logger"
	"food-delivery/internal/orders/handlers"
	"food-delivery/internal/orders/repository"
	"food-delivery/internal/orders/service"
	"food-delivery/internal/pubsub"
	usersrepo "food-delivery/internal/users/repository"
)

// Run wires the order gateway and serves it until ctx is cancelled.
func Run(ctx context.Context, port int, db *pgxpool.Pool, rdb *redis.Client, bus *pubsub.Bus) error {
	lg := logger.New("order-gateway")

	repo := repository.New(db)
	catalog := catalogrepo.New(db)
	users := usersrepo.New(db)

	svc := service.New(repo, catalog, bus, lg)
	sessions := auth.NewSessions(rdb)
	mw := auth.Middleware(sessions, users, lg)

	h := handlers.New(svc.OrderService, bus, lg)
	srv := httpx.New(":"+strconv.Itoa(port), h.Routes(mw))

	lg.Info("service_started", map[string]any{"port": port})
	return srv.Run(ctx)
}
