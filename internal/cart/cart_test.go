package cart

import (
	"testing"

	"EShop/internal/catalog"
)

func product(id string, priceCents int64, stock int) catalog.Product {
	return catalog.Product{
		ID:         id,
		Name:       "product " + id,
		PriceCents: priceCents,
		ImageURL:   "/img/" + id + ".png",
		Stock:      stock,
	}
}

func TestCart_AddProduct_NewItemSnapshotsProduct(t *testing.T) {
	var c Cart
	c.AddProduct(product("p1", 1299, 7), 2)

	if len(c.Items) != 1 {
		t.Fatalf("items=%d", len(c.Items))
	}

	it := c.Items[0]
	if it.ProductID != "p1" || it.Quantity != 2 {
		t.Fatalf("item=%+v", it)
	}
	if it.UnitPriceCents != 1299 || it.StockAtAdd != 7 {
		t.Fatalf("snapshot not taken: %+v", it)
	}
}

func TestCart_AddProduct_AccumulatesExisting(t *testing.T) {
	var c Cart
	c.AddProduct(product("p1", 1000, 10), 2)
	c.AddProduct(product("p1", 1000, 10), 3)

	if len(c.Items) != 1 {
		t.Fatalf("items=%d", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("qty=%d want=5", c.Items[0].Quantity)
	}
}

func TestCart_AddProduct_AccumulationIsNotClamped(t *testing.T) {
	var c Cart
	c.AddProduct(product("p1", 1000, 3), 2)
	c.AddProduct(product("p1", 1000, 3), 4)

	// Add never looks at the stock snapshot; only UpdateQuantity does.
	if c.Items[0].Quantity != 6 {
		t.Fatalf("qty=%d want=6", c.Items[0].Quantity)
	}
}

func TestCart_AddProduct_KeepsFirstSnapshot(t *testing.T) {
	var c Cart
	c.AddProduct(product("p1", 1000, 5), 1)

	repriced := product("p1", 2000, 9)
	c.AddProduct(repriced, 1)

	it := c.Items[0]
	if it.UnitPriceCents != 1000 || it.StockAtAdd != 5 {
		t.Fatalf("snapshot rewritten: %+v", it)
	}
}

func TestCart_UpdateQuantity_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		qty   int
		want  int
	}{
		{"within stock", 10, 4, 4},
		{"above stock", 10, 25, 10},
		{"exactly stock", 10, 10, 10},
		{"zero floors to one", 10, 0, 1},
		{"negative floors to one", 10, -3, 1},
		{"zero stock snapshot still floors to one", 0, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cart
			c.AddProduct(product("p1", 500, tt.stock), 1)
			c.UpdateQuantity("p1", tt.qty)

			if got := c.Items[0].Quantity; got != tt.want {
				t.Fatalf("qty=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestCart_UpdateQuantity_AbsentIDIsNoop(t *testing.T) {
	var c Cart
	c.AddProduct(product("p1", 500, 5), 2)
	c.UpdateQuantity("ghost", 4)

	if c.Items[0].Quantity != 2 {
		t.Fatalf("qty=%d", c.Items[0].Quantity)
	}
}

func TestCart_RemoveProduct(t *testing.T) {
	var c Cart
	c.AddProduct(product("p1", 500, 5), 1)
	c.AddProduct(product("p2", 700, 5), 1)
	c.AddProduct(product("p3", 900, 5), 1)

	c.RemoveProduct("p2")

	if len(c.Items) != 2 {
		t.Fatalf("items=%d", len(c.Items))
	}
	if c.Items[0].ProductID != "p1" || c.Items[1].ProductID != "p3" {
		t.Fatalf("order broken: %+v", c.Items)
	}

	// Absent id is a no-op.
	c.RemoveProduct("ghost")
	if len(c.Items) != 2 {
		t.Fatalf("items=%d after ghost removal", len(c.Items))
	}
}

func TestCart_Totals(t *testing.T) {
	var c Cart
	c.AddProduct(product("p1", 1000, 10), 2)
	c.AddProduct(product("p2", 500, 10), 1)

	if got := c.TotalCents(); got != 2500 {
		t.Fatalf("total=%d want=2500", got)
	}
	if got := c.ItemsCount(); got != 3 {
		t.Fatalf("count=%d want=3", got)
	}
}

func TestCart_Clear(t *testing.T) {
	var c Cart
	c.AddProduct(product("p1", 1000, 10), 2)
	c.Clear()

	if !c.IsEmpty() {
		t.Fatalf("not empty after clear")
	}
	if c.ItemsCount() != 0 || c.TotalCents() != 0 {
		t.Fatalf("count=%d total=%d", c.ItemsCount(), c.TotalCents())
	}
}
