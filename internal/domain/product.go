package domain

import "time"

type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category,omitempty"`
	PriceCents      int64     `json:"priceCents"`
	DiscountPercent int       `json:"discountPercent,omitempty"`
	Sizes           []string  `json:"sizes,omitempty"`
	Images          []string  `json:"images,omitempty"`
	Stock           int       `json:"stock"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
}

// EffectivePriceCents applies the product-level discount percentage.
func (p Product) EffectivePriceCents() int64 {
	if p.DiscountPercent <= 0 {
		return p.PriceCents
	}
	return p.PriceCents - p.PriceCents*int64(p.DiscountPercent)/100
}
