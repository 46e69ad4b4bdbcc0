// Package admin is the back-office surface: dashboard aggregates and
// CRUD over products, categories, orders and users. The gateway only
// routes admins here.
package admin

import (
	"errors"
	"time"

	"EShop/internal/catalog"
)

var ErrCategoryInUse = errors.New("category has products")

// User is the admin-visible shape of an account. No password hash
// leaves the store.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// UserUpdate applies only the fields that are set.
type UserUpdate struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	IsAdmin  *bool   `json:"is_admin"`
}

// ProductInput is the create/update payload for a product.
type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	Stock       int    `json:"stock"`
	IsActive    bool   `json:"is_active"`
	CategoryID  string `json:"category_id"`
}

// ProductRow is a product with its category name resolved for the
// listing table.
type ProductRow struct {
	catalog.Product
	CategoryName string `json:"category_name"`
}

// CategoryRow carries the product count shown next to each category.
type CategoryRow struct {
	catalog.Category
	ProductCount int `json:"product_count"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// OrderSummary is an order row joined with the buyer's account info.
type OrderSummary struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	TotalCents    int64     `json:"total_cents"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Totals is the dashboard header: revenue counts only completed
// orders, the rest are plain row counts.
type Totals struct {
	RevenueCents int64 `json:"revenue_cents"`
	Orders       int   `json:"orders"`
	Products     int   `json:"products"`
	Users        int   `json:"users"`
}

// SalesPoint is one day in the sales chart series, date in ISO form.
type SalesPoint struct {
	Date        string `json:"date"`
	AmountCents int64  `json:"amount_cents"`
}

type CategoryCount struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Products   int    `json:"products"`
}

type PopularProduct struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitsSold int    `json:"units_sold"`
}

type UserStats struct {
	Total        int `json:"total"`
	Admins       int `json:"admins"`
	NewThisMonth int `json:"new_this_month"`
}

// FillSalesSeries projects raw per-day sums onto a dense series of the
// last days entries ending at now, zero-filling days without sales.
// Both store implementations return sparse sums; the chart always gets
// a full series.
func FillSalesSeries(sums map[string]int64, days int, now time.Time) []SalesPoint {
	out := make([]SalesPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.UTC().AddDate(0, 0, -i).Format("2006-01-02")
		out = append(out, SalesPoint{Date: day, AmountCents: sums[day]})
	}
	return out
}
