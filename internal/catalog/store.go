package catalog

import "context"

// Store is the read surface the catalog service exposes over whatever
// holds the product table.
type Store interface {
	Ping(ctx context.Context) error

	// ListProducts returns one page of active products plus the total
	// number of active products matching the filter.
	ListProducts(ctx context.Context, f ListFilter) ([]Product, int, error)
	GetProduct(ctx context.Context, id string) (Product, bool, error)
	ListCategories(ctx context.Context) ([]Category, error)
}
