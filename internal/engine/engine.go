// Package engine maintains a local mirror of the authoritative cart held by
// the remote cart/wishlist service. Mutations are delegated to the service
// and, on success, followed by a full authoritative refetch; the mirror is
// never patched in place. Pricing is recomputed from the mirror on demand.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"citimart/internal/domain"
	"citimart/internal/pricing"
)

const defaultTimeout = 10 * time.Second

// Session identifies the customer on whose behalf the engine operates.
// Initialized at login, cleared at logout; passed explicitly into every call.
type Session struct {
	CustomerID string
	Token      string
}

// Engine reconciles cart and wishlist state against the remote service for
// one customer session. Mutations are serialized: at most one request per
// engine is in flight, so two rapid "+" clicks cannot interleave.
type Engine struct {
	baseURL string
	client  *http.Client
	pricing pricing.Config
	timeout time.Duration

	mu     sync.Mutex
	mirror domain.Cart
}

// Option tweaks engine construction.
type Option func(*Engine)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) { e.client = c }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// New builds an engine against the service at baseURL.
func New(baseURL string, cfg pricing.Config, opts ...Option) *Engine {
	e := &Engine{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		pricing: cfg,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cart returns a copy of the local mirror.
func (e *Engine) Cart() domain.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyCart(e.mirror)
}

// Quote recomputes pricing for the current mirror.
func (e *Engine) Quote() pricing.Result {
	return pricing.Compute(e.Cart(), e.pricing)
}

// LoadCart fetches authoritative state and replaces the mirror wholesale.
func (e *Engine) LoadCart(ctx context.Context, sess Session) (domain.Cart, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resync(ctx, sess)
}

// AddItem creates or increments the (productID, size) line remotely, then
// resynchronizes. The optimistic local view is never trusted as final truth.
func (e *Engine) AddItem(ctx context.Context, sess Session, productID, size string, quantity int) (domain.Cart, error) {
	if strings.TrimSpace(size) == "" {
		return domain.Cart{}, &ValidationError{Field: "size", Reason: "must not be empty"}
	}
	if quantity < 1 {
		return domain.Cart{}, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	req := cartMutationRequest{
		CustomerID: sess.CustomerID,
		ProductID:  productID,
		Size:       size,
		Quantity:   quantity,
	}
	if err := e.call(ctx, sess, http.MethodPost, "/cart/add", req, nil); err != nil {
		return domain.Cart{}, err
	}
	return e.resync(ctx, sess)
}

// UpdateQuantity sets the quantity of an existing line. A newQuantity below 1
// is silently ignored so a stray decrement cannot delete a line; removal must
// go through RemoveItem.
func (e *Engine) UpdateQuantity(ctx context.Context, sess Session, productID, size string, newQuantity int) (domain.Cart, error) {
	if newQuantity < 1 {
		return e.Cart(), nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	req := cartMutationRequest{
		CustomerID: sess.CustomerID,
		ProductID:  productID,
		Size:       size,
		Quantity:   newQuantity,
	}
	if err := e.call(ctx, sess, http.MethodPost, "/cart/update_quantity", req, nil); err != nil {
		return domain.Cart{}, err
	}
	return e.resync(ctx, sess)
}

// RemoveItem deletes the matching line remotely, then resynchronizes.
// Removing an absent line is not an error.
func (e *Engine) RemoveItem(ctx context.Context, sess Session, productID, size string) (domain.Cart, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	req := cartMutationRequest{
		CustomerID: sess.CustomerID,
		ProductID:  productID,
		Size:       size,
	}
	err := e.call(ctx, sess, http.MethodDelete, "/cart/remove_item", req, nil)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return domain.Cart{}, err
		}
	}
	return e.resync(ctx, sess)
}

// ClearCart empties all lines remotely and resets the mirror without a
// resync round trip. Safe because clear is unconditional.
func (e *Engine) ClearCart(ctx context.Context, sess Session) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	path := "/cart/clear/" + url.PathEscape(sess.CustomerID)
	if err := e.call(ctx, sess, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	e.mirror = domain.Cart{CustomerID: sess.CustomerID}
	return nil
}

// MoveToCart adds the wishlist entry to the cart and removes it from the
// wishlist only after the add succeeds. On failure the entry stays put; a
// duplicate is preferable to a silent loss.
func (e *Engine) MoveToCart(ctx context.Context, sess Session, productID, size string) (domain.Cart, error) {
	cart, err := e.AddItem(ctx, sess, productID, size, 1)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := e.RemoveFromWishlist(ctx, sess, productID, size); err != nil {
		return cart, fmt.Errorf("added to cart but wishlist removal failed: %w", err)
	}
	return cart, nil
}

// LoadWishlist fetches the customer's wishlist entries.
func (e *Engine) LoadWishlist(ctx context.Context, sess Session) ([]domain.WishlistEntry, error) {
	var resp wishlistResponse
	path := "/wishlist/" + url.PathEscape(sess.CustomerID)
	if err := e.call(ctx, sess, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toEntries(sess.CustomerID), nil
}

// AddToWishlist records a (productID, size) wish. Duplicates are no-ops on
// the server.
func (e *Engine) AddToWishlist(ctx context.Context, sess Session, productID, size string) error {
	req := wishlistMutationRequest{CustomerID: sess.CustomerID, ProductID: productID, Size: size}
	return e.call(ctx, sess, http.MethodPost, "/wishlist/add", req, nil)
}

// RemoveFromWishlist drops the matching wishlist entry.
func (e *Engine) RemoveFromWishlist(ctx context.Context, sess Session, productID, size string) error {
	req := wishlistMutationRequest{CustomerID: sess.CustomerID, ProductID: productID, Size: size}
	return e.call(ctx, sess, http.MethodPost, "/wishlist/remove", req, nil)
}

// resync discards the mirror and replaces it with a fresh authoritative
// fetch. Caller must hold e.mu.
func (e *Engine) resync(ctx context.Context, sess Session) (domain.Cart, error) {
	var resp cartResponse
	path := "/cart/" + url.PathEscape(sess.CustomerID)
	if err := e.call(ctx, sess, http.MethodGet, path, nil, &resp); err != nil {
		return domain.Cart{}, err
	}
	e.mirror = resp.toCart(sess.CustomerID)
	return copyCart(e.mirror), nil
}

// call performs one HTTP exchange and maps failures onto the engine's error
// taxonomy. A nil out discards the response body.
func (e *Engine) call(ctx context.Context, sess Session, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, e.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg messageResponse
		_ = json.Unmarshal(raw, &msg)
		if resp.StatusCode == http.StatusNotFound {
			return &NotFoundError{Message: msg.Error}
		}
		return &RemoteRejection{Status: resp.StatusCode, Message: msg.Error}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func copyCart(c domain.Cart) domain.Cart {
	out := domain.Cart{CustomerID: c.CustomerID}
	if len(c.Lines) > 0 {
		out.Lines = make([]domain.CartLine, len(c.Lines))
		copy(out.Lines, c.Lines)
	}
	return out
}
