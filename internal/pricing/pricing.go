package pricing

import (
	"strings"

	"citimart/internal/domain"
)

// Config carries the storefront pricing knobs. All values are cents and come
// from configuration, never from code.
type Config struct {
	BulkDiscountThresholdCents int64
	BulkDiscountCents          int64
	FreeDeliveryThresholdCents int64
	DeliveryFeeCents           int64
}

// Result is derived on every cart view and never stored.
type Result struct {
	SubtotalCents       int64  `json:"subtotalCents"`
	ItemCount           int    `json:"itemCount"`
	BulkDiscountCents   int64  `json:"bulkDiscountCents"`
	CouponDiscountCents int64  `json:"couponDiscountCents,omitempty"`
	DeliveryFeeCents    int64  `json:"deliveryFeeCents"`
	FinalTotalCents     int64  `json:"finalTotalCents"`
	AppliedOffer        string `json:"appliedOffer,omitempty"`
}

// Compute derives totals for a cart. Pure: no I/O, deterministic, idempotent.
//
// The bulk discount applies only when the subtotal strictly exceeds its
// threshold; the delivery fee is waived only when the post-discount subtotal
// strictly exceeds the free-delivery threshold. The final total is clamped at
// zero, which should never trigger under a sane Config.
func Compute(cart domain.Cart, cfg Config) Result {
	subtotal := cart.SubtotalCents()

	var bulkDiscount int64
	if subtotal > cfg.BulkDiscountThresholdCents {
		bulkDiscount = cfg.BulkDiscountCents
	}

	postDiscount := subtotal - bulkDiscount
	deliveryFee := DeliveryFee(postDiscount, false, cfg)

	final := postDiscount + deliveryFee
	if final < 0 {
		final = 0
	}

	return Result{
		SubtotalCents:     subtotal,
		ItemCount:         cart.ItemCount(),
		BulkDiscountCents: bulkDiscount,
		DeliveryFeeCents:  deliveryFee,
		FinalTotalCents:   final,
	}
}

// DeliveryFee returns the fee owed on a post-discount subtotal. A waived fee
// (free-shipping offer) always wins.
func DeliveryFee(postDiscountCents int64, waived bool, cfg Config) int64 {
	if waived {
		return 0
	}
	if postDiscountCents > cfg.FreeDeliveryThresholdCents {
		return 0
	}
	return cfg.DeliveryFeeCents
}

// ApplyOffer computes the coupon deduction an offer grants against the given
// lines. categoryOf resolves a product's category for flat_price offers; it
// may be nil when no flat_price offer can occur. The second return reports
// whether the offer waives the delivery fee.
func ApplyOffer(lines []domain.CartLine, offer domain.Offer, categoryOf func(productID string) string) (int64, bool) {
	subtotal := domain.Cart{Lines: lines}.SubtotalCents()

	switch strings.ToLower(offer.Type) {
	case domain.OfferFlat:
		if subtotal >= offer.MinPurchaseCents {
			return offer.AmountCents, false
		}
	case domain.OfferPercent:
		if subtotal >= offer.MinPurchaseCents {
			return subtotal * int64(offer.Percent) / 100, false
		}
	case domain.OfferBOGO:
		var discount int64
		for _, line := range lines {
			if line.Quantity >= 2 {
				freeUnits := int64(line.Quantity / 2)
				discount += freeUnits * line.UnitPriceCents
			}
		}
		return discount, false
	case domain.OfferFreeShipping:
		return 0, true
	case domain.OfferFlatPrice:
		if categoryOf == nil {
			return 0, false
		}
		var discount int64
		for _, line := range lines {
			if categoryOf(line.ProductID) != offer.Category {
				continue
			}
			perUnit := line.UnitPriceCents - offer.FlatPriceCents
			if perUnit > 0 {
				discount += perUnit * int64(line.Quantity)
			}
		}
		return discount, false
	}
	return 0, false
}
