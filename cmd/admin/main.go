package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"EShop/internal/admin"
	"EShop/pkg/kit"
)

func main() {
	service := "admin"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := kit.Getenv("PORT", "8084")

	var store admin.Store
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
		store = admin.NewPostgresStore(db)
		log.Info("using postgres admin store")
	} else {
		store = admin.NewMemStore()
		log.Warn("DATABASE_URL not set, using in-memory admin store")
	}

	s := &admin.Server{Store: store, Log: log}

	h := admin.NewHandler(s, admin.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: true,
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
