package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"EShop/internal/catalog"
)

// Subscriber observes cart changes. Called after the mutation has been
// persisted, with the cart's new value.
type Subscriber func(owner string, c Cart)

// Service owns cart mutation: every operation loads the owner's cart,
// applies the change, persists before returning and then notifies
// subscribers. Nothing else writes to the store. The service is handed
// to whoever needs cart access instead of living as a global.
type Service struct {
	store Store
	log   *zap.Logger

	mu   sync.RWMutex
	subs []Subscriber
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// Subscribe registers fn for all subsequent cart changes. Subscribers
// run synchronously on the mutating call and must be fast.
func (s *Service) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Load returns the owner's cart, empty when none was persisted yet.
func (s *Service) Load(ctx context.Context, owner string) (Cart, error) {
	c, _, err := s.store.Get(ctx, owner)
	if err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Service) AddProduct(ctx context.Context, owner string, p catalog.Product, qty int) (Cart, error) {
	return s.mutate(ctx, owner, func(c *Cart) {
		c.AddProduct(p, qty)
	})
}

func (s *Service) RemoveProduct(ctx context.Context, owner, productID string) (Cart, error) {
	return s.mutate(ctx, owner, func(c *Cart) {
		c.RemoveProduct(productID)
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, owner, productID string, qty int) (Cart, error) {
	return s.mutate(ctx, owner, func(c *Cart) {
		c.UpdateQuantity(productID, qty)
	})
}

// Clear drops the persisted cart entirely.
func (s *Service) Clear(ctx context.Context, owner string) error {
	if err := s.store.Delete(ctx, owner); err != nil {
		return err
	}
	s.notify(owner, Cart{})
	return nil
}

func (s *Service) mutate(ctx context.Context, owner string, fn func(*Cart)) (Cart, error) {
	c, _, err := s.store.Get(ctx, owner)
	if err != nil {
		return Cart{}, err
	}

	fn(&c)

	if err := s.store.Put(ctx, owner, c); err != nil {
		return Cart{}, err
	}

	s.notify(owner, c)
	return c, nil
}

func (s *Service) notify(owner string, c Cart) {
	s.mu.RLock()
	subs := s.subs
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(owner, c)
	}
}
