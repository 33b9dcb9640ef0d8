package model

// CartItem is a product snapshot plus a quantity. The snapshot is taken when
// the line is first added, so later catalogue edits do not reprice an open
// basket. Quantity is always >= 1; a line that would drop below 1 is removed
// instead.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal returns unit price times quantity for this line.
func (c *CartItem) LineTotal() int64 {
	return c.Price * int64(c.Quantity)
}

// CartSubtotal sums unit price times quantity over all lines. No rounding
// happens mid-sum; prices are whole currency units throughout.
func CartSubtotal(items []CartItem) int64 {
	var total int64
	for i := range items {
		total += items[i].LineTotal()
	}
	return total
}
