package cart

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"EShop/internal/catalog"
	"EShop/pkg/kit"
)

// ProductGetter is the slice of the catalog client the cart needs:
// one lookup at add time to snapshot name, price and stock.
type ProductGetter interface {
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
}

type Server struct {
	Carts   *Service
	Catalog ProductGetter
	Log     *zap.Logger
}

// Routes returns the cart surface, meant to be mounted at /cart behind
// kit.RequireIdentity; every handler assumes an identity is present.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.getCart)
	r.Delete("/", s.clear)
	r.Post("/items", s.addItem)
	r.Patch("/items/{productID}", s.updateItem)
	r.Delete("/items/{productID}", s.removeItem)

	return r
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	id, _ := kit.IdentityFromContext(r.Context())

	c, err := s.Carts.Load(r.Context(), id.UserID)
	if err != nil {
		s.Log.Error("load cart failed", zap.Error(err), zap.String("user_id", id.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, BuildView(c))
}

type addItemReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	id, _ := kit.IdentityFromContext(r.Context())

	var req addItemReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.ProductID == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "product_id required", nil)
		return
	}

	// Malformed or missing quantities degrade to one rather than fail.
	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}

	p, err := s.Catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		s.writeCatalogError(w, r, err, req.ProductID)
		return
	}
	if p.Stock <= 0 {
		kit.WriteError(w, r, http.StatusConflict, "out of stock", map[string]any{"product_id": p.ID})
		return
	}

	c, err := s.Carts.AddProduct(r.Context(), id.UserID, p, qty)
	if err != nil {
		s.Log.Error("add item failed", zap.Error(err), zap.String("user_id", id.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, BuildView(c))
}

type updateItemReq struct {
	Quantity int `json:"quantity"`
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	id, _ := kit.IdentityFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	var req updateItemReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	c, err := s.Carts.UpdateQuantity(r.Context(), id.UserID, productID, req.Quantity)
	if err != nil {
		s.Log.Error("update item failed", zap.Error(err), zap.String("user_id", id.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, BuildView(c))
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	id, _ := kit.IdentityFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	c, err := s.Carts.RemoveProduct(r.Context(), id.UserID, productID)
	if err != nil {
		s.Log.Error("remove item failed", zap.Error(err), zap.String("user_id", id.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, BuildView(c))
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	id, _ := kit.IdentityFromContext(r.Context())

	if err := s.Carts.Clear(r.Context(), id.UserID); err != nil {
		s.Log.Error("clear cart failed", zap.Error(err), zap.String("user_id", id.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeCatalogError(w http.ResponseWriter, r *http.Request, err error, productID string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid product_id", map[string]any{"product_id": productID})
	case errors.Is(err, catalog.ErrUnavailable):
		kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog unavailable", nil)
	default:
		s.Log.Warn("catalog error", zap.Error(err), zap.String("product_id", productID))
		kit.WriteError(w, r, http.StatusBadGateway, "catalog error", nil)
	}
}
