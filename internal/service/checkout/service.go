package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"citimart/internal/domain"
	"citimart/internal/pricing"
	cartrepo "citimart/internal/repository/cart"
)

var (
	// ErrEmptyCart rejects checkout of an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
)

// timeNow is a seam for expiry tests.
var timeNow = time.Now

type Service struct {
	carts   cartStore
	offers  offerStore
	orders  orderStore
	pricing pricing.Config
}

type cartStore interface {
	GetByCustomer(ctx context.Context, customerID string) ([]cartrepo.Item, error)
	Clear(ctx context.Context, customerID string) error
}

type offerStore interface {
	GetByCode(ctx context.Context, code string) (*domain.Offer, error)
}

type orderStore interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
}

func New(carts cartStore, offers offerStore, orders orderStore, cfg pricing.Config) *Service {
	return &Service{carts: carts, offers: offers, orders: orders, pricing: cfg}
}

type Input struct {
	CouponCode    string
	Phone         string
	Address       string
	PaymentMethod string
}

// Checkout snapshots the cart into an order, applying the coupon (if any),
// the bulk discount, and the delivery fee, then clears the cart. An unknown
// or expired coupon code is ignored rather than failing the order, matching
// the storefront's forgiving coupon box.
func (s *Service) Checkout(ctx context.Context, customerID string, in Input) (*domain.Order, error) {
	items, err := s.carts.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]domain.CartLine, 0, len(items))
	orderItems := make([]domain.OrderItem, 0, len(items))
	categories := make(map[string]string, len(items))
	for _, it := range items {
		price := it.Product.EffectivePriceCents()
		lines = append(lines, domain.CartLine{
			ProductID:      it.Product.ID,
			Size:           it.Size,
			UnitPriceCents: price,
			Quantity:       it.Quantity,
		})
		image := ""
		if len(it.Product.Images) > 0 {
			image = it.Product.Images[0]
		}
		orderItems = append(orderItems, domain.OrderItem{
			ProductID:      it.Product.ID,
			Name:           it.Product.Name,
			Image:          image,
			Size:           it.Size,
			Quantity:       it.Quantity,
			UnitPriceCents: price,
		})
		categories[it.Product.ID] = it.Product.Category
	}

	subtotal := domain.Cart{Lines: lines}.SubtotalCents()

	var couponDiscount int64
	freeShipping := false
	appliedOffer := ""
	if code := strings.TrimSpace(in.CouponCode); code != "" {
		offer, err := s.offers.GetByCode(ctx, code)
		switch {
		case err == nil && offerUsable(*offer):
			couponDiscount, freeShipping = pricing.ApplyOffer(lines, *offer, func(id string) string {
				return categories[id]
			})
			appliedOffer = offer.Title
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}

	var bulkDiscount int64
	if subtotal > s.pricing.BulkDiscountThresholdCents {
		bulkDiscount = s.pricing.BulkDiscountCents
	}

	discount := couponDiscount + bulkDiscount
	if discount > subtotal {
		discount = subtotal
	}
	postDiscount := subtotal - discount
	deliveryFee := pricing.DeliveryFee(postDiscount, freeShipping, s.pricing)

	order := domain.Order{
		CustomerID:       customerID,
		Items:            orderItems,
		TotalCents:       subtotal,
		DiscountCents:    discount,
		DeliveryFeeCents: deliveryFee,
		FinalCents:       postDiscount + deliveryFee,
		AppliedOffer:     appliedOffer,
		Phone:            in.Phone,
		Address:          in.Address,
		PaymentMethod:    paymentMethodOrDefault(in.PaymentMethod),
		Status:           domain.OrderStatusPlaced,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	// The order is already placed; a failed clear leaves stale lines that the
	// next cart fetch will show, which beats losing the order.
	if err := s.carts.Clear(ctx, customerID); err != nil {
		return created, err
	}
	return created, nil
}

func offerUsable(o domain.Offer) bool {
	return o.ValidTill.IsZero() || !timeNow().After(o.ValidTill)
}

func paymentMethodOrDefault(method string) string {
	if strings.TrimSpace(method) == "" {
		return "cod"
	}
	return method
}
