package recent_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"EShop/internal/catalog"
	"EShop/internal/recent"
	"EShop/pkg/kit"
)

type fakeCatalog map[string]catalog.Product

func (f fakeCatalog) GetProduct(_ context.Context, id string) (catalog.Product, error) {
	p, ok := f[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func newRecentTS(t *testing.T) *httptest.Server {
	t.Helper()

	s := &recent.Server{
		Store: recent.NewMemStore(),
		Catalog: fakeCatalog{
			"p1": {ID: "p1", Name: "Keyboard", PriceCents: 4990, Stock: 25},
			"p2": {ID: "p2", Name: "Mouse", PriceCents: 1990, Stock: 40},
		},
		Log: zap.NewNop(),
	}

	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(kit.RequireIdentity)
		pr.Mount("/recent", s.Routes())
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-User-Id", "u_1")
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

func TestRecentHTTP_RecordAndList(t *testing.T) {
	ts := newRecentTS(t)

	for _, pid := range []string{"p1", "p2"} {
		resp, _ := do(t, http.MethodPost, ts.URL+"/recent/"+pid)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("record status=%d", resp.StatusCode)
		}
	}

	resp, raw := do(t, http.MethodGet, ts.URL+"/recent")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status=%d", resp.StatusCode)
	}

	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(raw))
	}
	if len(products) != 2 || products[0].ID != "p2" || products[1].ID != "p1" {
		t.Fatalf("products=%+v", products)
	}
}

func TestRecentHTTP_DropsVanishedProducts(t *testing.T) {
	ts := newRecentTS(t)

	// p_gone was viewable once, the catalog no longer knows it.
	do(t, http.MethodPost, ts.URL+"/recent/p_gone")
	do(t, http.MethodPost, ts.URL+"/recent/p1")

	_, raw := do(t, http.MethodGet, ts.URL+"/recent")

	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("products=%+v", products)
	}
}
