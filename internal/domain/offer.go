package domain

import "time"

// Offer kinds understood by checkout.
const (
	OfferFlat         = "flat"
	OfferPercent      = "percent"
	OfferBOGO         = "bogo"
	OfferFreeShipping = "free_shipping"
	OfferFlatPrice    = "flat_price"
)

// Offer is a coupon redeemable at checkout. Which fields apply depends on
// Type: flat uses AmountCents, percent uses Percent, flat_price uses
// Category and FlatPriceCents. MinPurchaseCents gates flat and percent.
type Offer struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	Title            string    `json:"title"`
	Type             string    `json:"type"`
	AmountCents      int64     `json:"amountCents,omitempty"`
	Percent          int       `json:"percent,omitempty"`
	MinPurchaseCents int64     `json:"minPurchaseCents,omitempty"`
	Category         string    `json:"category,omitempty"`
	FlatPriceCents   int64     `json:"flatPriceCents,omitempty"`
	ValidTill        time.Time `json:"validTill"`
}
