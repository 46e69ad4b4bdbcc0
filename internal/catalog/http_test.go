package catalog_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"EShop/internal/catalog"
)

func newCatalogTS(t *testing.T) (*httptest.Server, *catalog.MemStore) {
	t.Helper()

	store := catalog.NewMemStore()
	s := &catalog.Server{Store: store, Log: zap.NewNop()}

	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return ts, store
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func TestCatalogHTTP_ListProducts(t *testing.T) {
	ts, _ := newCatalogTS(t)

	resp, raw := get(t, ts.URL+"/products")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Total-Count"); got != "2" {
		t.Fatalf("X-Total-Count=%q", got)
	}

	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(raw))
	}
	if len(products) != 2 {
		t.Fatalf("products=%d", len(products))
	}
}

func TestCatalogHTTP_ListProducts_FiltersAndPaginates(t *testing.T) {
	ts, store := newCatalogTS(t)

	store.PutCategory(catalog.Category{ID: "c2", Name: "Audio"})
	store.PutProduct(catalog.Product{
		ID: "p3", Name: "Headset", PriceCents: 8990, Stock: 5,
		IsActive: true, CategoryID: "c2", CreatedAt: time.Now(),
	})
	store.PutProduct(catalog.Product{
		ID: "p4", Name: "Retired headset", PriceCents: 100, Stock: 0,
		IsActive: false, CategoryID: "c2",
	})

	resp, raw := get(t, ts.URL+"/products?category=c2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	// Inactive products never show up.
	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p3" {
		t.Fatalf("products=%+v", products)
	}

	resp, _ = get(t, ts.URL+"/products?limit=1")
	if got := resp.Header.Get("X-Total-Count"); got != "2" {
		t.Fatalf("X-Total-Count=%q", got)
	}

	resp, raw = get(t, ts.URL+"/products?q=keyb")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, &products); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Keyboard" {
		t.Fatalf("products=%+v", products)
	}
}

func TestCatalogHTTP_GetProduct(t *testing.T) {
	ts, _ := newCatalogTS(t)

	resp, raw := get(t, ts.URL+"/products/p1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	var p catalog.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID != "p1" || p.PriceCents != 4990 {
		t.Fatalf("product=%+v", p)
	}

	resp, _ = get(t, ts.URL+"/products/ghost")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d", resp.StatusCode)
	}
}

func TestCatalogHTTP_ListCategories(t *testing.T) {
	ts, _ := newCatalogTS(t)

	resp, raw := get(t, ts.URL+"/categories")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	var cats []catalog.Category
	if err := json.Unmarshal(raw, &cats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cats) != 1 || cats[0].ID != "c1" {
		t.Fatalf("categories=%+v", cats)
	}
}
