package recent

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"EShop/internal/catalog"
	"EShop/pkg/kit"
)

type ProductGetter interface {
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
}

type Server struct {
	Store   Store
	Catalog ProductGetter
	Log     *zap.Logger
}

// Routes is mounted at /recent.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.list)
	r.Post("/{productID}", s.record)

	return r
}

func (s *Server) record(w http.ResponseWriter, r *http.Request) {
	id, _ := kit.IdentityFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	if err := s.Store.Record(r.Context(), id.UserID, productID); err != nil {
		s.Log.Error("record recent failed", zap.Error(err), zap.String("user_id", id.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	id, _ := kit.IdentityFromContext(r.Context())

	ids, err := s.Store.List(r.Context(), id.UserID)
	if err != nil {
		s.Log.Error("list recent failed", zap.Error(err), zap.String("user_id", id.UserID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	// Resolve through the catalog, dropping products that no longer
	// exist or went inactive.
	products := make([]catalog.Product, 0, len(ids))
	for _, pid := range ids {
		p, err := s.Catalog.GetProduct(r.Context(), pid)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			s.Log.Warn("resolve recent product failed", zap.Error(err), zap.String("product_id", pid))
			continue
		}
		products = append(products, p)
	}

	kit.WriteJSON(w, http.StatusOK, products)
}
