package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"citimart/internal/pricing"
)

var testPricing = pricing.Config{
	BulkDiscountThresholdCents: 200000,
	BulkDiscountCents:          10000,
	FreeDeliveryThresholdCents: 50000,
	DeliveryFeeCents:           5000,
}

const testToken = "test-token"

// fakeService is a scripted stand-in for the remote cart/wishlist service.
type fakeService struct {
	mu       sync.Mutex
	requests []string // "METHOD path"
	handlers map[string]http.HandlerFunc
}

func newFakeService() *fakeService {
	return &fakeService{handlers: map[string]http.HandlerFunc{}}
}

func (f *fakeService) on(method, path string, h http.HandlerFunc) {
	f.handlers[method+" "+path] = h
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.requests = append(f.requests, key)
	f.mu.Unlock()

	if h, ok := f.handlers[key]; ok {
		h(w, r)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "no handler for " + key})
}

func (f *fakeService) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	copy(out, f.requests)
	return out
}

func respondCart(items ...cartItemPayload) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(cartResponse{Items: items})
	}
}

func respondMessage(msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
	}
}

func respondError(status int, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
	}
}

func item(productID, size string, priceCents int64, qty int) cartItemPayload {
	return cartItemPayload{
		Product:  productPayload{ID: productID, Name: productID, PriceCents: priceCents},
		Size:     size,
		Quantity: qty,
	}
}

func testEngine(t *testing.T, svc *fakeService, opts ...Option) (*Engine, Session) {
	t.Helper()
	srv := httptest.NewServer(svc)
	t.Cleanup(srv.Close)
	return New(srv.URL, testPricing, opts...), Session{CustomerID: "cust-1", Token: testToken}
}

func TestLoadCartReplacesMirror(t *testing.T) {
	svc := newFakeService()
	svc.on(http.MethodGet, "/cart/cust-1", respondCart(item("p1", "M", 99900, 2)))
	eng, sess := testEngine(t, svc)

	cart, err := eng.LoadCart(context.Background(), sess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 2 || cart.Lines[0].UnitPriceCents != 99900 {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	// A second load with different authoritative state replaces, not merges.
	svc.on(http.MethodGet, "/cart/cust-1", respondCart(item("p9", "S", 10000, 1)))
	cart, err = eng.LoadCart(context.Background(), sess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].ProductID != "p9" {
		t.Fatalf("mirror not replaced wholesale: %+v", cart)
	}
}

func TestAddItemResyncsAfterMutation(t *testing.T) {
	svc := newFakeService()
	var sentAuth string
	var sent cartMutationRequest
	svc.on(http.MethodPost, "/cart/add", func(w http.ResponseWriter, r *http.Request) {
		sentAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&sent)
		respondMessage("Added to cart")(w, r)
	})
	svc.on(http.MethodGet, "/cart/cust-1", respondCart(item("p1", "M", 99900, 3)))
	eng, sess := testEngine(t, svc)

	cart, err := eng.AddItem(context.Background(), sess, "p1", "M", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sentAuth != "Bearer "+testToken {
		t.Fatalf("authorization header = %q", sentAuth)
	}
	if sent.CustomerID != "cust-1" || sent.ProductID != "p1" || sent.Size != "M" || sent.Quantity != 3 {
		t.Fatalf("unexpected mutation payload: %+v", sent)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 3 {
		t.Fatalf("mirror not resynced: %+v", cart)
	}

	want := []string{"POST /cart/add", "GET /cart/cust-1"}
	got := svc.seen()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("request order = %v, want %v", got, want)
	}
}

func TestAddItemValidation(t *testing.T) {
	svc := newFakeService()
	eng, sess := testEngine(t, svc)

	var verr *ValidationError
	if _, err := eng.AddItem(context.Background(), sess, "p1", "", 1); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty size, got %v", err)
	}
	if _, err := eng.AddItem(context.Background(), sess, "p1", "M", 0); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for zero quantity, got %v", err)
	}

	if reqs := svc.seen(); len(reqs) != 0 {
		t.Fatalf("validation must reject before any network call, saw %v", reqs)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc := newFakeService()
	svc.on(http.MethodPost, "/cart/add", respondError(http.StatusNotFound, "Product not found"))
	svc.on(http.MethodGet, "/cart/cust-1", respondCart(item("p1", "M", 99900, 1)))
	eng, sess := testEngine(t, svc)

	if _, err := eng.LoadCart(context.Background(), sess); err != nil {
		t.Fatalf("load: %v", err)
	}

	_, err := eng.AddItem(context.Background(), sess, "ghost", "M", 1)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	// Failed mutation must not corrupt the mirror.
	if cart := eng.Cart(); len(cart.Lines) != 1 || cart.Lines[0].ProductID != "p1" {
		t.Fatalf("mirror changed after failed add: %+v", cart)
	}
}

func TestUpdateQuantityBelowOneIsSilentNoop(t *testing.T) {
	svc := newFakeService()
	svc.on(http.MethodGet, "/cart/cust-1", respondCart(item("p1", "M", 99900, 2)))
	eng, sess := testEngine(t, svc)

	if _, err := eng.LoadCart(context.Background(), sess); err != nil {
		t.Fatalf("load: %v", err)
	}
	before := len(svc.seen())

	cart, err := eng.UpdateQuantity(context.Background(), sess, "p1", "M", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Lines[0].Quantity != 2 {
		t.Fatalf("line changed on no-op update: %+v", cart)
	}
	if len(svc.seen()) != before {
		t.Fatalf("no-op update must not hit the network")
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	svc := newFakeService()
	svc.on(http.MethodDelete, "/cart/remove_item", respondError(http.StatusNotFound, "Item not found in cart"))
	svc.on(http.MethodGet, "/cart/cust-1", respondCart())
	eng, sess := testEngine(t, svc)

	cart, err := eng.RemoveItem(context.Background(), sess, "ghost", "M")
	if err != nil {
		t.Fatalf("removing an absent line must not fail, got %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("unexpected cart: %+v", cart)
	}
}

func TestClearCartResetsMirrorWithoutResync(t *testing.T) {
	svc := newFakeService()
	svc.on(http.MethodGet, "/cart/cust-1", respondCart(item("p1", "M", 99900, 2)))
	svc.on(http.MethodDelete, "/cart/clear/cust-1", respondMessage("Cart cleared"))
	eng, sess := testEngine(t, svc)

	if _, err := eng.LoadCart(context.Background(), sess); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := eng.ClearCart(context.Background(), sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart := eng.Cart(); len(cart.Lines) != 0 {
		t.Fatalf("mirror not reset: %+v", cart)
	}

	got := svc.seen()
	if got[len(got)-1] != "DELETE /cart/clear/cust-1" {
		t.Fatalf("clear must not trigger a resync round trip, saw %v", got)
	}
}

func TestRemoteRejectionSurfacesServerMessage(t *testing.T) {
	svc := newFakeService()
	svc.on(http.MethodPost, "/cart/update_quantity", respondError(http.StatusBadRequest, "Quantity must be at least 1"))
	eng, sess := testEngine(t, svc)

	_, err := eng.UpdateQuantity(context.Background(), sess, "p1", "M", 5)
	var rej *RemoteRejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected RemoteRejection, got %v", err)
	}
	if rej.Message != "Quantity must be at least 1" {
		t.Fatalf("message = %q, want server cause verbatim", rej.Message)
	}
}

func TestMoveToCartFailureLeavesWishlistUntouched(t *testing.T) {
	svc := newFakeService()
	svc.on(http.MethodPost, "/cart/add", respondError(http.StatusNotFound, "Product not found"))
	eng, sess := testEngine(t, svc)

	if _, err := eng.MoveToCart(context.Background(), sess, "ghost", "M"); err == nil {
		t.Fatalf("expected move-to-cart to fail")
	}

	for _, req := range svc.seen() {
		if req == "POST /wishlist/remove" {
			t.Fatalf("wishlist removal must not run after a failed add")
		}
	}
}

func TestMoveToCartHappyPath(t *testing.T) {
	svc := newFakeService()
	svc.on(http.MethodPost, "/cart/add", respondMessage("Added to cart"))
	svc.on(http.MethodGet, "/cart/cust-1", respondCart(item("p1", "M", 99900, 1)))
	svc.on(http.MethodPost, "/wishlist/remove", respondMessage("Removed from wishlist"))
	eng, sess := testEngine(t, svc)

	cart, err := eng.MoveToCart(context.Background(), sess, "p1", "M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	want := []string{"POST /cart/add", "GET /cart/cust-1", "POST /wishlist/remove"}
	got := svc.seen()
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("request order = %v, want %v", got, want)
	}
}

func TestNetworkErrorWhenUnreachable(t *testing.T) {
	svc := newFakeService()
	srv := httptest.NewServer(svc)
	eng := New(srv.URL, testPricing)
	sess := Session{CustomerID: "cust-1", Token: testToken}
	srv.Close()

	_, err := eng.LoadCart(context.Background(), sess)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestTimeout(t *testing.T) {
	svc := newFakeService()
	svc.on(http.MethodGet, "/cart/cust-1", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	})
	eng, sess := testEngine(t, svc, WithTimeout(20*time.Millisecond))

	_, err := eng.LoadCart(context.Background(), sess)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestQuoteRecomputesFromMirror(t *testing.T) {
	svc := newFakeService()
	svc.on(http.MethodGet, "/cart/cust-1", respondCart(
		item("p1", "M", 99900, 1),
		item("p2", "L", 129900, 2),
	))
	eng, sess := testEngine(t, svc)

	if _, err := eng.LoadCart(context.Background(), sess); err != nil {
		t.Fatalf("load: %v", err)
	}

	quote := eng.Quote()
	if quote.FinalTotalCents != 349700 {
		t.Fatalf("final = %d, want 349700", quote.FinalTotalCents)
	}
	if again := eng.Quote(); again != quote {
		t.Fatalf("quote not idempotent: %+v vs %+v", quote, again)
	}
}
