package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"citimart/internal/domain"
	"citimart/internal/pricing"
	cartrepo "citimart/internal/repository/cart"
)

var testPricing = pricing.Config{
	BulkDiscountThresholdCents: 200000,
	BulkDiscountCents:          10000,
	FreeDeliveryThresholdCents: 50000,
	DeliveryFeeCents:           5000,
}

type stubCartStore struct {
	items       []cartrepo.Item
	clearCalled bool
	clearErr    error
}

func (s *stubCartStore) GetByCustomer(_ context.Context, _ string) ([]cartrepo.Item, error) {
	return s.items, nil
}

func (s *stubCartStore) Clear(_ context.Context, _ string) error {
	s.clearCalled = true
	return s.clearErr
}

type stubOfferStore struct {
	offer *domain.Offer
	err   error
}

func (s *stubOfferStore) GetByCode(_ context.Context, _ string) (*domain.Offer, error) {
	return s.offer, s.err
}

type stubOrderStore struct {
	created *domain.Order
	err     error
}

func (s *stubOrderStore) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := o
	out.ID = "order-1"
	out.CreatedAt = time.Now()
	s.created = &out
	return &out, nil
}

func cartItems() []cartrepo.Item {
	return []cartrepo.Item{
		{Product: domain.Product{ID: "p1", Name: "Shirt", Category: "Shirts", PriceCents: 99900, Images: []string{"shirt.jpg"}}, Size: "M", Quantity: 1},
		{Product: domain.Product{ID: "p2", Name: "Jeans", Category: "Jeans", PriceCents: 129900}, Size: "L", Quantity: 2},
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := New(&stubCartStore{}, &stubOfferStore{err: domain.ErrNotFound}, &stubOrderStore{}, testPricing)
	if _, err := svc.Checkout(context.Background(), "cust", Input{}); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutWithoutCoupon(t *testing.T) {
	carts := &stubCartStore{items: cartItems()}
	orders := &stubOrderStore{}
	svc := New(carts, &stubOfferStore{err: domain.ErrNotFound}, orders, testPricing)

	order, err := svc.Checkout(context.Background(), "cust", Input{Phone: "555", Address: "12 Main St"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 3597 -> bulk discount 100 -> 3497, free delivery.
	if order.TotalCents != 359700 {
		t.Fatalf("total = %d, want 359700", order.TotalCents)
	}
	if order.DiscountCents != 10000 {
		t.Fatalf("discount = %d, want 10000", order.DiscountCents)
	}
	if order.DeliveryFeeCents != 0 {
		t.Fatalf("delivery fee = %d, want 0", order.DeliveryFeeCents)
	}
	if order.FinalCents != 349700 {
		t.Fatalf("final = %d, want 349700", order.FinalCents)
	}
	if order.Status != domain.OrderStatusPlaced {
		t.Fatalf("status = %q", order.Status)
	}
	if order.PaymentMethod != "cod" {
		t.Fatalf("payment method = %q, want cod default", order.PaymentMethod)
	}
	if !carts.clearCalled {
		t.Fatalf("cart must be cleared after a placed order")
	}
	if len(order.Items) != 2 || order.Items[0].Name != "Shirt" || order.Items[0].Image != "shirt.jpg" {
		t.Fatalf("order items not snapshotted: %+v", order.Items)
	}
}

func TestCheckoutWithFlatCoupon(t *testing.T) {
	offer := &domain.Offer{
		Code: "NEW100", Title: "Flat 100 off", Type: domain.OfferFlat,
		AmountCents: 10000, MinPurchaseCents: 99900,
		ValidTill: time.Now().Add(24 * time.Hour),
	}
	svc := New(&stubCartStore{items: cartItems()}, &stubOfferStore{offer: offer}, &stubOrderStore{}, testPricing)

	order, err := svc.Checkout(context.Background(), "cust", Input{CouponCode: "NEW100"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Coupon 100 + bulk 100 on 3597.
	if order.DiscountCents != 20000 {
		t.Fatalf("discount = %d, want 20000", order.DiscountCents)
	}
	if order.AppliedOffer != "Flat 100 off" {
		t.Fatalf("applied offer = %q", order.AppliedOffer)
	}
	if order.FinalCents != 339700 {
		t.Fatalf("final = %d, want 339700", order.FinalCents)
	}
}

func TestCheckoutIgnoresExpiredCoupon(t *testing.T) {
	offer := &domain.Offer{
		Code: "OLD", Title: "Expired", Type: domain.OfferFlat, AmountCents: 10000,
		ValidTill: time.Now().Add(-time.Hour),
	}
	svc := New(&stubCartStore{items: cartItems()}, &stubOfferStore{offer: offer}, &stubOrderStore{}, testPricing)

	order, err := svc.Checkout(context.Background(), "cust", Input{CouponCode: "OLD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.AppliedOffer != "" || order.DiscountCents != 10000 {
		t.Fatalf("expired coupon applied: %+v", order)
	}
}

func TestCheckoutFreeShippingCoupon(t *testing.T) {
	items := []cartrepo.Item{
		{Product: domain.Product{ID: "p1", Name: "Mug", PriceCents: 30000}, Size: "One Size", Quantity: 1},
	}
	offer := &domain.Offer{
		Code: "SHIPFREE", Title: "Free Shipping", Type: domain.OfferFreeShipping,
		ValidTill: time.Now().Add(time.Hour),
	}
	svc := New(&stubCartStore{items: items}, &stubOfferStore{offer: offer}, &stubOrderStore{}, testPricing)

	order, err := svc.Checkout(context.Background(), "cust", Input{CouponCode: "SHIPFREE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 300 is under the free-delivery threshold, but the coupon waives the fee.
	if order.DeliveryFeeCents != 0 {
		t.Fatalf("delivery fee = %d, want 0", order.DeliveryFeeCents)
	}
	if order.FinalCents != 30000 {
		t.Fatalf("final = %d, want 30000", order.FinalCents)
	}
}

func TestCheckoutSmallCartPaysDelivery(t *testing.T) {
	items := []cartrepo.Item{
		{Product: domain.Product{ID: "p1", Name: "Mug", PriceCents: 30000}, Size: "One Size", Quantity: 1},
	}
	svc := New(&stubCartStore{items: items}, &stubOfferStore{err: domain.ErrNotFound}, &stubOrderStore{}, testPricing)

	order, err := svc.Checkout(context.Background(), "cust", Input{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.DeliveryFeeCents != 5000 || order.FinalCents != 35000 {
		t.Fatalf("fee = %d, final = %d; want 5000, 35000", order.DeliveryFeeCents, order.FinalCents)
	}
}

func TestCheckoutOrderFailureKeepsCart(t *testing.T) {
	carts := &stubCartStore{items: cartItems()}
	svc := New(carts, &stubOfferStore{err: domain.ErrNotFound}, &stubOrderStore{err: errors.New("boom")}, testPricing)

	if _, err := svc.Checkout(context.Background(), "cust", Input{}); err == nil {
		t.Fatalf("expected order creation error")
	}
	if carts.clearCalled {
		t.Fatalf("cart must not be cleared when the order was not placed")
	}
}
