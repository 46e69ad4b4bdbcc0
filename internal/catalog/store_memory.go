package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemStore backs the catalog in dev and tests. Seeded with a couple of
// products so a fresh stack has something on the shelf.
type MemStore struct {
	mu         sync.RWMutex
	products   map[string]Product
	categories map[string]Category
}

func NewMemStore() *MemStore {
	s := &MemStore{
		products:   map[string]Product{},
		categories: map[string]Category{},
	}
	s.categories["c1"] = Category{ID: "c1", Name: "Peripherals"}
	s.products["p1"] = Product{ID: "p1", Name: "Keyboard", PriceCents: 4990, Stock: 25, IsActive: true, CategoryID: "c1"}
	s.products["p2"] = Product{ID: "p2", Name: "Mouse", PriceCents: 1990, Stock: 40, IsActive: true, CategoryID: "c1"}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

// PutProduct is for test and dev seeding.
func (s *MemStore) PutProduct(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// PutCategory is for test and dev seeding.
func (s *MemStore) PutCategory(c Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

func (s *MemStore) ListProducts(ctx context.Context, f ListFilter) ([]Product, int, error) {
	f = f.Normalize()

	s.mu.RLock()
	all := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if !p.IsActive {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
			continue
		}
		all = append(all, p)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	total := len(all)
	if f.Offset >= total {
		return []Product{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return all[f.Offset:end], total, nil
}

func (s *MemStore) GetProduct(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok || !p.IsActive {
		return Product{}, false, nil
	}
	return p, true, nil
}

func (s *MemStore) ListCategories(ctx context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
