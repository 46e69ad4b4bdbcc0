package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"EShop/internal/cart"
	"EShop/internal/catalog"
	"EShop/internal/checkout"
	"EShop/internal/events"
	"EShop/internal/order"
	"EShop/internal/recent"
	"EShop/internal/shop"
	"EShop/pkg/kit"
)

func main() {
	service := "shop"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := kit.Getenv("PORT", "8083")
	catalogURL := kit.Getenv("CATALOG_URL", "http://localhost:8082")

	var cartStore cart.Store
	var recentStore recent.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		cartStore = cart.NewRedisStore(client)
		recentStore = recent.NewRedisStore(client)
		log.Info("using redis cart store", zap.String("addr", addr))
	} else {
		cartStore = cart.NewMemStore()
		recentStore = recent.NewMemStore()
		log.Warn("REDIS_ADDR not set, carts will not survive restarts")
	}

	var orderStore order.Store
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			log.Fatal("open database failed", zap.Error(err))
		}
		if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
			if err := kit.RunMigrations(db, dir, log); err != nil {
				log.Fatal("migrations failed", zap.Error(err))
			}
		}
		orderStore = order.NewPostgresStore(db)
		log.Info("using postgres order store")
	} else {
		orderStore = order.NewMemStore()
		log.Warn("DATABASE_URL not set, using in-memory order store")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		topic := kit.Getenv("KAFKA_ORDERS_TOPIC", "orders.created")
		publisher = events.NewKafkaPublisher(broker, topic, log)
		log.Info("publishing order events", zap.String("broker", broker), zap.String("topic", topic))
	}

	reg := prometheus.NewRegistry()

	carts := cart.NewService(cartStore, log)
	carts.Subscribe(cart.NewObserver(reg).Observe)

	products := catalog.NewClient(catalogURL)

	h := shop.NewHandler(shop.Deps{
		Cart:     &cart.Server{Carts: carts, Catalog: products, Log: log},
		Checkout: &checkout.Server{
			Submitter: &checkout.Submitter{
				Carts:  carts,
				Orders: orderStore,
				Events: publisher,
				Log:    log,
			},
			Log: log,
		},
		Orders:     &order.Server{Store: orderStore, Log: log},
		Recent:     &recent.Server{Store: recentStore, Catalog: products, Log: log},
		CartStore:  cartStore,
		OrderStore: orderStore,
	}, shop.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
