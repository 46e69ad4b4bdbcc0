package admin

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"EShop/internal/order"
	"EShop/pkg/kit"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	dashboardDays     = 30
	dashboardListSize = 5
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/dashboard", s.dashboard)

		r.Get("/products", s.listProducts)
		r.Post("/products", s.createProduct)
		r.Put("/products/{id}", s.updateProduct)
		r.Delete("/products/{id}", s.deleteProduct)

		r.Get("/categories", s.listCategories)
		r.Post("/categories", s.createCategory)
		r.Put("/categories/{id}", s.updateCategory)
		r.Delete("/categories/{id}", s.deleteCategory)

		r.Get("/orders", s.listOrders)
		r.Get("/orders/{id}", s.getOrder)
		r.Patch("/orders/{id}/status", s.updateOrderStatus)

		r.Get("/users", s.listUsers)
		r.Get("/users/stats", s.userStats)
		r.Get("/users/export", s.exportUsers)
		r.Patch("/users/{id}", s.updateUser)
	})

	return r
}

type dashboardResp struct {
	Totals          Totals           `json:"totals"`
	Sales           []SalesPoint     `json:"sales"`
	Categories      []CategoryCount  `json:"categories"`
	RecentOrders    []OrderSummary   `json:"recent_orders"`
	PopularProducts []PopularProduct `json:"popular_products"`
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	days := atoiOr(r.URL.Query().Get("days"), dashboardDays)
	if days < 1 || days > 365 {
		days = dashboardDays
	}

	ctx := r.Context()

	totals, err := s.Store.GetTotals(ctx)
	if err != nil {
		s.serverError(w, r, "dashboard totals", err)
		return
	}
	sums, err := s.Store.SalesByDay(ctx, days)
	if err != nil {
		s.serverError(w, r, "dashboard sales", err)
		return
	}
	cats, err := s.Store.CategoryDistribution(ctx)
	if err != nil {
		s.serverError(w, r, "dashboard categories", err)
		return
	}
	recent, _, err := s.Store.ListOrders(ctx, dashboardListSize, 0)
	if err != nil {
		s.serverError(w, r, "dashboard recent orders", err)
		return
	}
	popular, err := s.Store.PopularProducts(ctx, dashboardListSize)
	if err != nil {
		s.serverError(w, r, "dashboard popular products", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, dashboardResp{
		Totals:          totals,
		Sales:           FillSalesSeries(sums, days, time.Now()),
		Categories:      cats,
		RecentOrders:    recent,
		PopularProducts: popular,
	})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	rows, total, err := s.Store.ListProducts(r.Context(), limit, offset)
	if err != nil {
		s.serverError(w, r, "list products", err)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	kit.WriteJSON(w, http.StatusOK, rows)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeProduct(w, r)
	if !ok {
		return
	}

	id := "p_" + uuid.NewString()
	if err := s.Store.CreateProduct(r.Context(), id, in); err != nil {
		s.serverError(w, r, "create product", err)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	in, ok := s.decodeProduct(w, r)
	if !ok {
		return
	}

	found, err := s.Store.UpdateProduct(r.Context(), id, in)
	if err != nil {
		s.serverError(w, r, "update product", err)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := s.Store.DeleteProduct(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "delete product", err)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decodeProduct(w http.ResponseWriter, r *http.Request) (ProductInput, bool) {
	var in ProductInput
	if err := kit.DecodeJSON(w, r, &in); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return ProductInput{}, false
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "name required", nil)
		return ProductInput{}, false
	}
	if in.PriceCents < 0 || in.Stock < 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "price/stock must be non-negative", nil)
		return ProductInput{}, false
	}
	return in, true
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	rows, err := s.Store.ListCategories(r.Context())
	if err != nil {
		s.serverError(w, r, "list categories", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, rows)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeCategory(w, r)
	if !ok {
		return
	}

	id := "c_" + uuid.NewString()
	if err := s.Store.CreateCategory(r.Context(), id, in); err != nil {
		s.serverError(w, r, "create category", err)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	in, ok := s.decodeCategory(w, r)
	if !ok {
		return
	}

	found, err := s.Store.UpdateCategory(r.Context(), id, in)
	if err != nil {
		s.serverError(w, r, "update category", err)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := s.Store.DeleteCategory(r.Context(), id)
	if errors.Is(err, ErrCategoryInUse) {
		kit.WriteError(w, r, http.StatusConflict, "category has products", map[string]any{"id": id})
		return
	}
	if err != nil {
		s.serverError(w, r, "delete category", err)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decodeCategory(w http.ResponseWriter, r *http.Request) (CategoryInput, bool) {
	var in CategoryInput
	if err := kit.DecodeJSON(w, r, &in); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return CategoryInput{}, false
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "name required", nil)
		return CategoryInput{}, false
	}
	return in, true
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	rows, total, err := s.Store.ListOrders(r.Context(), limit, offset)
	if err != nil {
		s.serverError(w, r, "list orders", err)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	kit.WriteJSON(w, http.StatusOK, rows)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, found, err := s.Store.GetOrder(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get order", err)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, o)
}

type statusReq struct {
	Status string `json:"status"`
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req statusReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if !order.ValidStatus(req.Status) {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid status", map[string]any{"status": req.Status})
		return
	}

	found, err := s.Store.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		s.serverError(w, r, "update order status", err)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	query := r.URL.Query().Get("q")

	rows, total, err := s.Store.ListUsers(r.Context(), query, limit, offset)
	if err != nil {
		s.serverError(w, r, "list users", err)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	kit.WriteJSON(w, http.StatusOK, rows)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var upd UserUpdate
	if err := kit.DecodeJSON(w, r, &upd); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	found, err := s.Store.UpdateUser(r.Context(), id, upd)
	if err != nil {
		s.serverError(w, r, "update user", err)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) userStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.Store.GetUserStats(r.Context())
	if err != nil {
		s.serverError(w, r, "user stats", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, st)
}

// exportUsers streams the full user list as CSV, mirroring the
// original dashboard's export button.
func (s *Server) exportUsers(w http.ResponseWriter, r *http.Request) {
	users, _, err := s.Store.ListUsers(r.Context(), "", maxPageSize*100, 0)
	if err != nil {
		s.serverError(w, r, "export users", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "email", "full_name", "phone", "is_admin", "created_at"})
	for _, u := range users {
		_ = cw.Write([]string{
			u.ID,
			u.Email,
			u.FullName,
			u.Phone,
			strconv.FormatBool(u.IsAdmin),
			u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	cw.Flush()
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if s.Log != nil {
		s.Log.Error(op+" failed", zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func pageParams(r *http.Request) (limit, offset int) {
	q := r.URL.Query()

	limit = atoiOr(q.Get("limit"), defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset = atoiOr(q.Get("offset"), 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
