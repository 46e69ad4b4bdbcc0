package cart

// ShippingFeeCents is the flat shipping fee, charged only on non-empty
// carts.
const ShippingFeeCents int64 = 599

// RowView is one rendered cart line.
type RowView struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	ImageURL       string `json:"image_url"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	MaxQuantity    int    `json:"max_quantity"`
	LineTotalCents int64  `json:"line_total_cents"`
}

// View is the full cart projection: rows plus the summary figures.
type View struct {
	Items         []RowView `json:"items"`
	ItemsCount    int       `json:"items_count"`
	SubtotalCents int64     `json:"subtotal_cents"`
	ShippingCents int64     `json:"shipping_cents"`
	TotalCents    int64     `json:"total_cents"`
}

// BuildView is a pure projection of c; it holds no state and is
// recomputed on every read.
func BuildView(c Cart) View {
	v := View{
		Items:      make([]RowView, 0, len(c.Items)),
		ItemsCount: c.ItemsCount(),
	}

	for _, it := range c.Items {
		v.Items = append(v.Items, RowView{
			ProductID:      it.ProductID,
			Name:           it.Name,
			ImageURL:       it.ImageURL,
			UnitPriceCents: it.UnitPriceCents,
			Quantity:       it.Quantity,
			MaxQuantity:    it.StockAtAdd,
			LineTotalCents: it.UnitPriceCents * int64(it.Quantity),
		})
	}

	v.SubtotalCents = c.TotalCents()
	if !c.IsEmpty() {
		v.ShippingCents = ShippingFeeCents
	}
	v.TotalCents = v.SubtotalCents + v.ShippingCents

	return v
}
