package checkout

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"EShop/pkg/kit"
)

type Server struct {
	Submitter *Submitter
	Log       *zap.Logger
}

// Routes is mounted at /checkout.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/", s.submit)
	return r
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	id, _ := kit.IdentityFromContext(r.Context())

	var form ShippingForm
	if err := kit.DecodeJSON(w, r, &form); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	form.CustomerName = strings.TrimSpace(form.CustomerName)
	form.DeliveryAddress = strings.TrimSpace(form.DeliveryAddress)
	form.CustomerPhone = strings.TrimSpace(form.CustomerPhone)
	form.PaymentMethod = strings.TrimSpace(form.PaymentMethod)

	if form.CustomerName == "" || form.DeliveryAddress == "" || form.PaymentMethod == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "shipping details required", nil)
		return
	}

	o, err := s.Submitter.Submit(r.Context(), id.UserID, form)
	if err != nil {
		s.writeSubmitError(w, r, err, id.UserID)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, o)
}

func (s *Server) writeSubmitError(w http.ResponseWriter, r *http.Request, err error, userID string) {
	switch {
	case errors.Is(err, ErrEmptyCart):
		kit.WriteError(w, r, http.StatusBadRequest, "cart is empty", nil)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kit.WriteError(w, r, http.StatusGatewayTimeout, "timeout", nil)
	default:
		s.Log.Error("checkout failed", zap.Error(err), zap.String("user_id", userID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}
