package cart

import "testing"

func TestBuildView_EmptyCartHasNoShipping(t *testing.T) {
	v := BuildView(Cart{})

	if v.ItemsCount != 0 || v.SubtotalCents != 0 {
		t.Fatalf("view=%+v", v)
	}
	if v.ShippingCents != 0 {
		t.Fatalf("shipping charged on empty cart: %d", v.ShippingCents)
	}
	if v.TotalCents != 0 {
		t.Fatalf("total=%d", v.TotalCents)
	}
	if v.Items == nil {
		t.Fatalf("items must encode as [], not null")
	}
}

func TestBuildView_Summary(t *testing.T) {
	var c Cart
	c.AddProduct(product("p1", 1000, 10), 2)
	c.AddProduct(product("p2", 500, 4), 1)

	v := BuildView(c)

	if v.ItemsCount != 3 {
		t.Fatalf("count=%d", v.ItemsCount)
	}
	if v.SubtotalCents != 2500 {
		t.Fatalf("subtotal=%d", v.SubtotalCents)
	}
	if v.ShippingCents != ShippingFeeCents {
		t.Fatalf("shipping=%d", v.ShippingCents)
	}
	if v.TotalCents != 2500+ShippingFeeCents {
		t.Fatalf("total=%d", v.TotalCents)
	}

	row := v.Items[0]
	if row.LineTotalCents != 2000 {
		t.Fatalf("line total=%d", row.LineTotalCents)
	}
	if row.MaxQuantity != 10 {
		t.Fatalf("max qty=%d", row.MaxQuantity)
	}
}
