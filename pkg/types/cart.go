package types

import "github.com/shopspring/decimal"

// CartItem is one line of the server-owned cart, as returned by the cart
// endpoint.
type CartItem struct {
	CartID    FlexInt         `json:"cart_id"`
	ProductID FlexInt         `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  FlexInt         `json:"quantity"`
	// Total is the server-supplied line total. The snapshot recomputes it from
	// Price×Quantity rather than trusting it blindly.
	Total decimal.Decimal `json:"total"`
}

// LineTotal is the locally computed price × quantity.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// CartSnapshot mirrors the last cart fetch for the session user. Count is
// always recomputed from the item slice; the navigation badge reads it.
type CartSnapshot struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`
}

// Total sums the per-item line totals.
func (s CartSnapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
