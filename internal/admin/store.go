package admin

import (
	"context"

	"EShop/internal/order"
)

// Store is everything the back office reads and writes. Listings are
// newest first and paginated with limit/offset, returning the total
// row count alongside the page.
type Store interface {
	Ping(ctx context.Context) error

	ListProducts(ctx context.Context, limit, offset int) ([]ProductRow, int, error)
	CreateProduct(ctx context.Context, id string, in ProductInput) error
	UpdateProduct(ctx context.Context, id string, in ProductInput) (bool, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)

	ListCategories(ctx context.Context) ([]CategoryRow, error)
	CreateCategory(ctx context.Context, id string, in CategoryInput) error
	UpdateCategory(ctx context.Context, id string, in CategoryInput) (bool, error)
	// DeleteCategory refuses with ErrCategoryInUse while products still
	// reference the category.
	DeleteCategory(ctx context.Context, id string) (bool, error)

	ListOrders(ctx context.Context, limit, offset int) ([]OrderSummary, int, error)
	GetOrder(ctx context.Context, id string) (order.Order, bool, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (bool, error)

	ListUsers(ctx context.Context, query string, limit, offset int) ([]User, int, error)
	UpdateUser(ctx context.Context, id string, upd UserUpdate) (bool, error)
	GetUserStats(ctx context.Context) (UserStats, error)

	GetTotals(ctx context.Context) (Totals, error)
	// SalesByDay returns order-total day sums keyed "2006-01-02" over
	// the last days, sparse; see FillSalesSeries. All statuses count,
	// only the headline revenue figure filters on completed.
	SalesByDay(ctx context.Context, days int) (map[string]int64, error)
	CategoryDistribution(ctx context.Context) ([]CategoryCount, error)
	PopularProducts(ctx context.Context, limit int) ([]PopularProduct, error)
}
