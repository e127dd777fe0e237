package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"food-delivery/internal/common/logger"
	"food-delivery/internal/config"
	"food-delivery/internal/connections/database"
	"food-delivery/internal/connections/rabbitmq"
	"food-delivery/internal/connections/redisdb"
	"food-delivery/internal/notify"
	"food-delivery/internal/orders"
	"food-delivery/internal/pubsub"
)

func main() {
	mode := flag.String("mode", "", "api | notification-subscriber")
	cfgPath := flag.String("config", "config.yaml", "path to YAML config")
	port := flag.Int("port", 0, "http port (api mode, overrides config)")
	flag.Parse()

	lg := logger.New("bootstrap")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		lg.Error("config_load_failed", err, nil)
		os.Exit(1)
	}

	switch *mode {
	case "api":
		if *port == 0 {
			*port = cfg.Server.Port
		}
		if err := runAPI(ctx, cfg, *port, lg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		rmq, err := rabbitmq.Dial(cfg.Rabbit)
		if err != nil {
			lg.Error("rabbitmq_connect_failed", err, nil)
			os.Exit(1)
		}
		defer rmq.Close()
		if err := notify.RunSubscriber(ctx, rmq); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode is required: api | notification-subscriber")
		os.Exit(2)
	}
}

func runAPI(ctx context.Context, cfg config.Config, port int, lg *logger.Logger) error {
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}
	defer db.Close()
	lg.Info("postgres_connected", map[string]any{"host": cfg.Database.Host, "database": cfg.Database.Name})

	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis connect: %w", err)
	}
	defer rdb.Close()
	lg.Info("redis_connected", map[string]any{"host": cfg.Redis.Host})

	rmq, err := rabbitmq.Dial(cfg.Rabbit)
	if err != nil {
		return fmt.Errorf("rabbitmq connect: %w", err)
	}
	defer rmq.Close()
	if err := notify.Declare(rmq.Channel()); err != nil {
		return fmt.Errorf("declare broker topology: %w", err)
	}
	lg.Info("rabbitmq_connected", map[string]any{"host": cfg.Rabbit.Host})

	// One bus per process; the gateway's subscription streams and the
	// broker relay are both fed from it.
	bus := pubsub.New()

	g, gctx := errgroup.WithContext(ctx)
	relay := notify.NewRelay(bus, rmq, logger.New("notify-relay"))
	g.Go(func() error { return relay.Run(gctx) })
	g.Go(func() error { return orders.Run(gctx, port, db, rdb, bus) })
	return g.Wait()
}
