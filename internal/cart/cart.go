// Package cart holds a shopper's selected products. A Cart is a plain
// value: mutations are synchronous and in-memory, persistence and
// change notification live in Service.
package cart

import "EShop/internal/catalog"

// LineItem is one product entry. Name, price and stock are snapshots
// taken when the product was first added; StockAtAdd is only used to
// clamp quantity updates locally and is not refreshed afterwards.
type LineItem struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	ImageURL       string `json:"image_url"`
	Quantity       int    `json:"quantity"`
	StockAtAdd     int    `json:"stock_at_add"`
}

// Cart keeps items in insertion order, one LineItem per product.
type Cart struct {
	Items []LineItem `json:"items"`
}

// AddProduct appends a new line item with snapshots taken from p, or
// accumulates quantity onto the existing one. Accumulation is not
// clamped against the stock snapshot; only UpdateQuantity clamps.
// Callers pass qty >= 1.
func (c *Cart) AddProduct(p catalog.Product, qty int) {
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity += qty
			return
		}
	}

	c.Items = append(c.Items, LineItem{
		ProductID:      p.ID,
		Name:           p.Name,
		UnitPriceCents: p.PriceCents,
		ImageURL:       p.ImageURL,
		Quantity:       qty,
		StockAtAdd:     p.Stock,
	})
}

// RemoveProduct deletes the matching item, keeping order. Absent ids
// are a no-op.
func (c *Cart) RemoveProduct(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the stored quantity to max(1, min(qty, StockAtAdd)).
// Absent ids are a no-op.
func (c *Cart) UpdateQuantity(productID string, qty int) {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}

		if qty > c.Items[i].StockAtAdd {
			qty = c.Items[i].StockAtAdd
		}
		if qty < 1 {
			// Floors at one even for a zero stock snapshot; removal is
			// an explicit operation, never a side effect of clamping.
			qty = 1
		}
		c.Items[i].Quantity = qty
		return
	}
}

func (c *Cart) TotalCents() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.UnitPriceCents * int64(it.Quantity)
	}
	return total
}

func (c *Cart) ItemsCount() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
