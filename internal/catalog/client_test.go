package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"EShop/internal/catalog"
)

func TestClient_GetProduct(t *testing.T) {
	ts, _ := newCatalogTS(t)
	c := catalog.NewClient(ts.URL)

	p, err := c.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.ID != "p1" || p.Name != "Keyboard" {
		t.Fatalf("product=%+v", p)
	}
}

func TestClient_GetProduct_NotFound(t *testing.T) {
	ts, _ := newCatalogTS(t)
	c := catalog.NewClient(ts.URL)

	_, err := c.GetProduct(context.Background(), "ghost")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestClient_GetProduct_BadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	c := catalog.NewClient(ts.URL)
	_, err := c.GetProduct(context.Background(), "p1")
	if !errors.Is(err, catalog.ErrBadStatus) {
		t.Fatalf("err=%v", err)
	}
}

func TestClient_GetProduct_Unavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close() // refuse connections

	c := catalog.NewClient(ts.URL)
	_, err := c.GetProduct(context.Background(), "p1")
	if !errors.Is(err, catalog.ErrUnavailable) {
		t.Fatalf("err=%v", err)
	}
}

func TestClient_ListCategories(t *testing.T) {
	ts, store := newCatalogTS(t)
	store.PutCategory(catalog.Category{ID: "c2", Name: "Audio"})

	c := catalog.NewClient(ts.URL)
	cats, err := c.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("categories=%+v", cats)
	}
}
