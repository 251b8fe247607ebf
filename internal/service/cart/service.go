package cart

import (
	"context"
	"errors"
	"strings"

	"citimart/internal/domain"
	cartrepo "citimart/internal/repository/cart"
)

var (
	// ErrSizeRequired rejects adds without a size before touching storage.
	ErrSizeRequired = errors.New("size is required")
	// ErrQuantityTooLow rejects quantities below one.
	ErrQuantityTooLow = errors.New("quantity must be at least 1")
	// ErrProductNotFound means the product id did not resolve.
	ErrProductNotFound = errors.New("product not found")
	// ErrItemNotFound means the (product, size) line is not in the cart.
	ErrItemNotFound = errors.New("item not found in cart")
)

type Service struct {
	repo        cartRepo
	productRepo productRepo
}

type cartRepo interface {
	GetByCustomer(ctx context.Context, customerID string) ([]cartrepo.Item, error)
	AddItem(ctx context.Context, customerID, productID, size string, quantity int) error
	UpdateQuantity(ctx context.Context, customerID, productID, size string, quantity int) error
	RemoveItem(ctx context.Context, customerID, productID, size string) error
	Clear(ctx context.Context, customerID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, productRepo productRepo) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

// Get returns the customer's cart lines joined with current product data.
func (s *Service) Get(ctx context.Context, customerID string) ([]cartrepo.Item, error) {
	return s.repo.GetByCustomer(ctx, customerID)
}

// ToCart projects repository items onto the cart aggregate, pricing each
// line at the product's current effective price.
func ToCart(customerID string, items []cartrepo.Item) domain.Cart {
	cart := domain.Cart{CustomerID: customerID}
	for _, it := range items {
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID:      it.Product.ID,
			Size:           it.Size,
			UnitPriceCents: it.Product.EffectivePriceCents(),
			Quantity:       it.Quantity,
			AddedAt:        it.AddedAt,
		})
	}
	return cart
}

// Add creates the (productID, size) line or folds into an existing one.
func (s *Service) Add(ctx context.Context, customerID, productID, size string, quantity int) error {
	if strings.TrimSpace(size) == "" {
		return ErrSizeRequired
	}
	if quantity < 1 {
		return ErrQuantityTooLow
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.repo.AddItem(ctx, customerID, productID, size, quantity)
}

// UpdateQuantity sets an existing line's quantity.
func (s *Service) UpdateQuantity(ctx context.Context, customerID, productID, size string, quantity int) error {
	if quantity < 1 {
		return ErrQuantityTooLow
	}
	if err := s.repo.UpdateQuantity(ctx, customerID, productID, size, quantity); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

// Remove deletes the matching line.
func (s *Service) Remove(ctx context.Context, customerID, productID, size string) error {
	if err := s.repo.RemoveItem(ctx, customerID, productID, size); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	return nil
}

// Clear empties the cart. Clearing an already-empty cart succeeds.
func (s *Service) Clear(ctx context.Context, customerID string) error {
	return s.repo.Clear(ctx, customerID)
}
