package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"EShop/pkg/kit"
)

// Server is the customer-facing order surface: creation happens in the
// checkout package, here a shopper only reads their own orders.
type Server struct {
	Store Store
	Log   *zap.Logger
}

// Routes is mounted at /orders.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.list)
	r.Get("/{id}", s.get)

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	id, _ := kit.IdentityFromContext(r.Context())

	orders, err := s.Store.ListByUser(r.Context(), id.UserID)
	if err != nil {
		s.Log.Error("list orders failed", zap.Error(err), zap.String("user_id", id.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, orders)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, _ := kit.IdentityFromContext(r.Context())
	orderID := chi.URLParam(r, "id")

	o, found, err := s.Store.Get(r.Context(), orderID)
	if err != nil {
		s.Log.Error("get order failed", zap.Error(err), zap.String("order_id", orderID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": orderID})
		return
	}
	if o.UserID != id.UserID {
		kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, o)
}
