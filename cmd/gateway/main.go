package main

import (
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"EShop/internal/gateway"
	"EShop/pkg/kit"
)

func main() {
	service := "gateway"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := kit.Getenv("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if len(jwtSecret) < 32 {
		log.Fatal("JWT_SECRET is required and must be at least 32 chars")
	}

	deps := gateway.Deps{
		JWTSecret:      jwtSecret,
		AuthURL:        kit.Getenv("AUTH_URL", "http://auth:8081"),
		CatalogURL:     kit.Getenv("CATALOG_URL", "http://catalog:8082"),
		ShopURL:        kit.Getenv("SHOP_URL", "http://shop:8083"),
		AdminURL:       kit.Getenv("ADMIN_URL", "http://admin:8084"),
		AuthRateLimit:  atoiOr(kit.Getenv("AUTH_RATE_LIMIT", "10"), 10),
		AuthRateWindow: atoiOr(kit.Getenv("AUTH_RATE_WINDOW_SECONDS", "60"), 60),
	}

	h, err := gateway.NewHandler(deps, gateway.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: true,
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})
	if err != nil {
		log.Fatal("init gateway handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
