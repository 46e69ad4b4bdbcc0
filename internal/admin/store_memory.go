package admin

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"EShop/internal/catalog"
	"EShop/internal/order"
)

// MemStore carries the whole back office in maps, for tests and for
// running the stack without Postgres.
type MemStore struct {
	mu         sync.RWMutex
	products   map[string]catalog.Product
	categories map[string]catalog.Category
	orders     map[string]order.Order
	users      map[string]User
}

func NewMemStore() *MemStore {
	return &MemStore{
		products:   map[string]catalog.Product{},
		categories: map[string]catalog.Category{},
		orders:     map[string]order.Order{},
		users:      map[string]User{},
	}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

// Seed helpers for tests and dev mains.

func (s *MemStore) PutProduct(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *MemStore) PutCategory(c catalog.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

func (s *MemStore) PutOrder(o order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

func (s *MemStore) PutUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *MemStore) ListProducts(ctx context.Context, limit, offset int) ([]ProductRow, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]ProductRow, 0, len(s.products))
	for _, p := range s.products {
		row := ProductRow{Product: p}
		if c, ok := s.categories[p.CategoryID]; ok {
			row.CategoryName = c.Name
		}
		all = append(all, row)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	return pageOf(all, limit, offset), len(all), nil
}

func (s *MemStore) CreateProduct(ctx context.Context, id string, in ProductInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[id] = catalog.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		IsActive:    in.IsActive,
		CategoryID:  in.CategoryID,
		CreatedAt:   time.Now().UTC(),
	}
	return nil
}

func (s *MemStore) UpdateProduct(ctx context.Context, id string, in ProductInput) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return false, nil
	}
	p.Name = in.Name
	p.Description = in.Description
	p.PriceCents = in.PriceCents
	p.ImageURL = in.ImageURL
	p.Stock = in.Stock
	p.IsActive = in.IsActive
	p.CategoryID = in.CategoryID
	s.products[id] = p
	return true, nil
}

func (s *MemStore) DeleteProduct(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, nil
}

func (s *MemStore) ListCategories(ctx context.Context) ([]CategoryRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]CategoryRow, 0, len(s.categories))
	for _, c := range s.categories {
		row := CategoryRow{Category: c}
		for _, p := range s.products {
			if p.CategoryID == c.ID {
				row.ProductCount++
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemStore) CreateCategory(ctx context.Context, id string, in CategoryInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories[id] = catalog.Category{ID: id, Name: in.Name, Description: in.Description}
	return nil
}

func (s *MemStore) UpdateCategory(ctx context.Context, id string, in CategoryInput) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return false, nil
	}
	c.Name = in.Name
	c.Description = in.Description
	s.categories[id] = c
	return true, nil
}

func (s *MemStore) DeleteCategory(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	for _, p := range s.products {
		if p.CategoryID == id {
			return false, ErrCategoryInUse
		}
	}
	delete(s.categories, id)
	return true, nil
}

func (s *MemStore) ListOrders(ctx context.Context, limit, offset int) ([]OrderSummary, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]OrderSummary, 0, len(s.orders))
	for _, o := range s.orders {
		sum := OrderSummary{
			ID:           o.ID,
			UserID:       o.UserID,
			CustomerName: o.CustomerName,
			TotalCents:   o.TotalCents,
			Status:       o.Status,
			CreatedAt:    o.CreatedAt,
		}
		if u, ok := s.users[o.UserID]; ok {
			sum.CustomerEmail = u.Email
		}
		all = append(all, sum)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	return pageOf(all, limit, offset), len(all), nil
}

func (s *MemStore) GetOrder(ctx context.Context, id string) (order.Order, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	return o, ok, nil
}

func (s *MemStore) UpdateOrderStatus(ctx context.Context, id, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return false, nil
	}
	o.Status = status
	s.orders[id] = o
	return true, nil
}

func (s *MemStore) ListUsers(ctx context.Context, query string, limit, offset int) ([]User, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	all := make([]User, 0, len(s.users))
	for _, u := range s.users {
		if q != "" &&
			!strings.Contains(strings.ToLower(u.Email), q) &&
			!strings.Contains(strings.ToLower(u.FullName), q) {
			continue
		}
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	return pageOf(all, limit, offset), len(all), nil
}

func (s *MemStore) UpdateUser(ctx context.Context, id string, upd UserUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return false, nil
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.IsAdmin != nil {
		u.IsAdmin = *upd.IsAdmin
	}
	s.users[id] = u
	return true, nil
}

func (s *MemStore) GetUserStats(ctx context.Context) (UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	monthStart := time.Now().UTC()
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, time.UTC)

	var st UserStats
	for _, u := range s.users {
		st.Total++
		if u.IsAdmin {
			st.Admins++
		}
		if !u.CreatedAt.Before(monthStart) {
			st.NewThisMonth++
		}
	}
	return st, nil
}

func (s *MemStore) GetTotals(ctx context.Context) (Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t Totals
	for _, o := range s.orders {
		t.Orders++
		if o.Status == order.StatusCompleted {
			t.RevenueCents += o.TotalCents
		}
	}
	for _, p := range s.products {
		if p.IsActive {
			t.Products++
		}
	}
	t.Users = len(s.users)
	return t, nil
}

func (s *MemStore) SalesByDay(ctx context.Context, days int) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	sums := make(map[string]int64, days)
	for _, o := range s.orders {
		if o.CreatedAt.Before(cutoff) {
			continue
		}
		sums[o.CreatedAt.UTC().Format("2006-01-02")] += o.TotalCents
	}
	return sums, nil
}

func (s *MemStore) CategoryDistribution(ctx context.Context) ([]CategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]CategoryCount, 0, len(s.categories))
	for _, c := range s.categories {
		cc := CategoryCount{CategoryID: c.ID, Name: c.Name}
		for _, p := range s.products {
			if p.IsActive && p.CategoryID == c.ID {
				cc.Products++
			}
		}
		out = append(out, cc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Products != out[j].Products {
			return out[i].Products > out[j].Products
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *MemStore) PopularProducts(ctx context.Context, limit int) ([]PopularProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := map[string]*PopularProduct{}
	for _, o := range s.orders {
		for _, it := range o.Items {
			pp, ok := byID[it.ProductID]
			if !ok {
				pp = &PopularProduct{ProductID: it.ProductID, Name: it.Name}
				byID[it.ProductID] = pp
			}
			pp.UnitsSold += it.Qty
		}
	}

	out := make([]PopularProduct, 0, len(byID))
	for _, pp := range byID {
		out = append(out, *pp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnitsSold != out[j].UnitsSold {
			return out[i].UnitsSold > out[j].UnitsSold
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func pageOf[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
