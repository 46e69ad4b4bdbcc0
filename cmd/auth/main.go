package main

import (
	"database/sql"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"EShop/internal/auth"
	"EShop/pkg/kit"
)

func main() {
	service := "auth"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := kit.Getenv("PORT", "8081")
	jwtSecret := kit.Getenv("JWT_SECRET", "dev-secret")

	var store auth.UserStore
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
		store = auth.NewPostgresStore(db)
		log.Info("using postgres user store")
	} else {
		store = auth.NewMemStore()
		log.Warn("DATABASE_URL not set, using in-memory user store")
	}

	s := &auth.Server{
		Log:   log,
		Store: store,
		JWT:   auth.NewTokenMaker(jwtSecret),
	}

	h := auth.NewHandler(s, auth.HTTPDeps{
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
