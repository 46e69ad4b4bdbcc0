// Package shop assembles the customer-facing surface: cart, checkout,
// order history and recently viewed, all behind the gateway-injected
// identity headers.
package shop

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"EShop/internal/cart"
	"EShop/internal/checkout"
	"EShop/internal/order"
	"EShop/internal/recent"
	"EShop/pkg/kit"
)

type Deps struct {
	Cart     *cart.Server
	Checkout *checkout.Server
	Orders   *order.Server
	Recent   *recent.Server

	// CartStore and OrderStore are pinged by readyz.
	CartStore  cart.Store
	OrderStore order.Store
}

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

func NewHandler(d Deps, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))

	if deps.Registry != nil {
		metrics := kit.NewMetrics(deps.Registry)
		r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

		if deps.MetricsEnabled {
			r.With(kit.MetricsAuth(deps.MetricsToken)).
				Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
		}
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", readyz(d, deps.Log))

	r.Group(func(pr chi.Router) {
		pr.Use(kit.RequireIdentity)
		pr.Mount("/cart", d.Cart.Routes())
		pr.Mount("/checkout", d.Checkout.Routes())
		pr.Mount("/orders", d.Orders.Routes())
		pr.Mount("/recent", d.Recent.Routes())
	})

	return r
}

func readyz(d Deps, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := d.CartStore.Ping(ctx); err != nil {
			if log != nil {
				log.Warn("readyz failed: cart store", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "cart store not ready", nil)
			return
		}
		if err := d.OrderStore.Ping(ctx); err != nil {
			if log != nil {
				log.Warn("readyz failed: order store", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "order store not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
