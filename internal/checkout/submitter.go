// Package checkout turns a cart snapshot plus a shipping form into one
// order-creation write. Per attempt the flow is Idle -> Submitting ->
// Success (cart cleared) or Failed (cart intact); there are no partial
// states and no automatic retry. No idempotency key is attached, so a
// user-driven retry after a network failure can create a duplicate
// order.
package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"EShop/internal/cart"
	"EShop/internal/events"
	"EShop/internal/order"
)

var ErrEmptyCart = errors.New("cart is empty")

// ShippingForm is the buyer-entered half of an order.
type ShippingForm struct {
	CustomerName    string `json:"customer_name"`
	DeliveryAddress string `json:"delivery_address"`
	CustomerPhone   string `json:"customer_phone"`
	PaymentMethod   string `json:"payment_method"`
}

type Submitter struct {
	Carts  *cart.Service
	Orders order.Store
	Events events.Publisher
	Log    *zap.Logger
}

// Submit snapshots the user's cart, writes the order and clears the
// cart only after the write succeeded. Item prices and names are the
// cart's add-time snapshots; stock is not re-validated here, the
// clamp against the add-time snapshot is all the protection there is.
func (s *Submitter) Submit(ctx context.Context, userID string, form ShippingForm) (order.Order, error) {
	c, err := s.Carts.Load(ctx, userID)
	if err != nil {
		return order.Order{}, err
	}
	if c.IsEmpty() {
		return order.Order{}, ErrEmptyCart
	}

	o := buildOrder(userID, c, form)

	if err := s.Orders.Create(ctx, o); err != nil {
		// Failed attempt: the cart stays intact for the next try.
		return order.Order{}, err
	}

	if err := s.Carts.Clear(ctx, userID); err != nil {
		// The order exists; a stale cart is the lesser problem.
		s.Log.Warn("clear cart after checkout failed", zap.Error(err), zap.String("user_id", userID))
	}

	ev := events.OrderCreated{
		OrderID:    o.ID,
		UserID:     o.UserID,
		TotalCents: o.TotalCents,
		ItemsCount: len(o.Items),
		CreatedAt:  o.CreatedAt,
	}
	if err := s.Events.PublishOrderCreated(ctx, ev); err != nil {
		s.Log.Warn("order created event not published", zap.Error(err), zap.String("order_id", o.ID))
	}

	return o, nil
}

func buildOrder(userID string, c cart.Cart, form ShippingForm) order.Order {
	items := make([]order.Item, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, order.Item{
			ProductID:      it.ProductID,
			Name:           it.Name,
			UnitPriceCents: it.UnitPriceCents,
			Qty:            it.Quantity,
		})
	}

	subtotal := c.TotalCents()
	return order.Order{
		ID:              "o_" + uuid.NewString(),
		UserID:          userID,
		CustomerName:    form.CustomerName,
		DeliveryAddress: form.DeliveryAddress,
		CustomerPhone:   form.CustomerPhone,
		PaymentMethod:   form.PaymentMethod,
		Items:           items,
		SubtotalCents:   subtotal,
		ShippingCents:   cart.ShippingFeeCents,
		TotalCents:      subtotal + cart.ShippingFeeCents,
		Status:          order.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}
}
