package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"citimart/internal/domain"
	wishlistrepo "citimart/internal/repository/wishlist"
	cartsvc "citimart/internal/service/cart"
	checkoutsvc "citimart/internal/service/checkout"
)

func TestGetWishlistBody(t *testing.T) {
	f := newRouterFixture(t)
	f.wishlist.items = []wishlistrepo.Item{
		{Product: domain.Product{ID: "p9", Name: "Denim Jacket", PriceCents: 249900}, Size: "L"},
	}

	req := httptest.NewRequest(http.MethodGet, "/wishlist/cust-1", nil)
	req.Header.Set("Authorization", f.bearerFor(t, "cust-1"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"id":"p9"`) || !strings.Contains(body, `"size":"L"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestMoveToCartFailedAdd(t *testing.T) {
	f := newRouterFixture(t)
	f.wishlist.moveErr = cartsvc.ErrProductNotFound

	body := `{"customerId":"cust-1","productId":"ghost","size":"M"}`
	req := httptest.NewRequest(http.MethodPost, "/wishlist/move_to_cart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.bearerFor(t, "cust-1"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"error":"Product not found"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestMoveToCartHappy(t *testing.T) {
	f := newRouterFixture(t)

	body := `{"customerId":"cust-1","productId":"p1","size":"M","quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/wishlist/move_to_cart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.bearerFor(t, "cust-1"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"message":"Item moved to cart"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCheckoutEmptyCartResponse(t *testing.T) {
	f := newRouterFixture(t)
	f.checkout.order = nil
	f.checkout.err = checkoutsvc.ErrEmptyCart

	body := `{"customerId":"cust-1"}`
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.bearerFor(t, "cust-1"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"error":"Cart is empty"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCheckoutPlacesOrder(t *testing.T) {
	f := newRouterFixture(t)

	body := `{"customerId":"cust-1","couponCode":"NEW100","address":"12 Main St"}`
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.bearerFor(t, "cust-1"))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"id":"order-1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
