package order_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"EShop/internal/order"
	"EShop/pkg/kit"
)

func seedOrder(t *testing.T, store *order.MemStore, id, userID string, total int64) {
	t.Helper()

	err := store.Create(context.Background(), order.Order{
		ID:              id,
		UserID:          userID,
		CustomerName:    "Ada Lovelace",
		DeliveryAddress: "1 Analytical Way",
		PaymentMethod:   "card",
		Items:           []order.Item{{ProductID: "p1", Name: "Keyboard", UnitPriceCents: total, Qty: 1}},
		SubtotalCents:   total,
		ShippingCents:   0,
		TotalCents:      total,
		Status:          order.StatusPending,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
}

func newOrderTS(t *testing.T, store *order.MemStore) *httptest.Server {
	t.Helper()

	s := &order.Server{Store: store, Log: zap.NewNop()}

	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(kit.RequireIdentity)
		pr.Mount("/orders", s.Routes())
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func getAs(t *testing.T, userID, url string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-User-Id", userID)
	req.Header.Set("X-User-Role", "user")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func TestOrderHTTP_ListOwnOrders(t *testing.T) {
	store := order.NewMemStore()
	seedOrder(t, store, "o_1", "u_1", 1000)
	seedOrder(t, store, "o_2", "u_1", 2000)
	seedOrder(t, store, "o_3", "u_2", 3000)

	ts := newOrderTS(t, store)

	resp, raw := getAs(t, "u_1", ts.URL+"/orders")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	var orders []order.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(raw))
	}
	if len(orders) != 2 {
		t.Fatalf("orders=%d", len(orders))
	}
	for _, o := range orders {
		if o.UserID != "u_1" {
			t.Fatalf("foreign order leaked: %+v", o)
		}
	}
}

func TestOrderHTTP_GetOwnOrder(t *testing.T) {
	store := order.NewMemStore()
	seedOrder(t, store, "o_1", "u_1", 1000)

	ts := newOrderTS(t, store)

	resp, raw := getAs(t, "u_1", ts.URL+"/orders/o_1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	var o order.Order
	if err := json.Unmarshal(raw, &o); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if o.ID != "o_1" || len(o.Items) != 1 {
		t.Fatalf("order=%+v", o)
	}
}

func TestOrderHTTP_ForeignOrderForbidden(t *testing.T) {
	store := order.NewMemStore()
	seedOrder(t, store, "o_1", "u_1", 1000)

	ts := newOrderTS(t, store)

	resp, _ := getAs(t, "u_2", ts.URL+"/orders/o_1")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status=%d", resp.StatusCode)
	}
}

func TestOrderHTTP_NotFound(t *testing.T) {
	ts := newOrderTS(t, order.NewMemStore())

	resp, _ := getAs(t, "u_1", ts.URL+"/orders/ghost")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d", resp.StatusCode)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "completed", "cancelled"} {
		if !order.ValidStatus(s) {
			t.Fatalf("%q rejected", s)
		}
	}
	if order.ValidStatus("refunded") || order.ValidStatus("") {
		t.Fatalf("unknown status accepted")
	}
}
