package domain

import "time"

// Cart is the authoritative line-item collection for one customer. It is
// created implicitly on the first add and emptied, never deleted, on clear.
type Cart struct {
	CustomerID string     `json:"customerId"`
	Lines      []CartLine `json:"items"`
}

// CartLine is one purchasable selection. Identity within a cart is the
// (ProductID, Size) pair, compared case-sensitively.
type CartLine struct {
	ProductID      string    `json:"productId"`
	Size           string    `json:"size"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int       `json:"quantity"`
	AddedAt        time.Time `json:"addedAt"`
}

// SubtotalCents sums unit price times quantity across all lines.
func (c Cart) SubtotalCents() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.UnitPriceCents * int64(line.Quantity)
	}
	return total
}

// ItemCount sums line quantities.
func (c Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// FindLine returns the index of the line matching (productID, size), or -1.
func (c Cart) FindLine(productID, size string) int {
	for i, line := range c.Lines {
		if line.ProductID == productID && line.Size == size {
			return i
		}
	}
	return -1
}
