package wishlist

import (
	"context"
	"errors"
	"strings"

	"citimart/internal/domain"
	wishlistrepo "citimart/internal/repository/wishlist"
)

var (
	ErrSizeRequired    = errors.New("size is required")
	ErrProductNotFound = errors.New("product not found")
	ErrEntryNotFound   = errors.New("item not found in wishlist")
)

type Service struct {
	repo        wishlistRepo
	productRepo productRepo
	carts       cartAdder
}

type wishlistRepo interface {
	ListByCustomer(ctx context.Context, customerID string) ([]wishlistrepo.Item, error)
	Add(ctx context.Context, customerID, productID, size string) error
	Remove(ctx context.Context, customerID, productID, size string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// cartAdder is the slice of the cart service move-to-cart needs.
type cartAdder interface {
	Add(ctx context.Context, customerID, productID, size string, quantity int) error
}

func New(repo wishlistRepo, productRepo productRepo, carts cartAdder) *Service {
	return &Service{repo: repo, productRepo: productRepo, carts: carts}
}

func (s *Service) List(ctx context.Context, customerID string) ([]wishlistrepo.Item, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// Add records the wish. Re-adding an existing tuple is a no-op.
func (s *Service) Add(ctx context.Context, customerID, productID, size string) error {
	if strings.TrimSpace(size) == "" {
		return ErrSizeRequired
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.repo.Add(ctx, customerID, productID, size)
}

func (s *Service) Remove(ctx context.Context, customerID, productID, size string) error {
	if err := s.repo.Remove(ctx, customerID, productID, size); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

// MoveToCart folds the entry into the cart, then removes it from the
// wishlist. The removal runs only after the add succeeded, so a failed add
// leaves the wish intact.
func (s *Service) MoveToCart(ctx context.Context, customerID, productID, size string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if err := s.carts.Add(ctx, customerID, productID, size, quantity); err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, customerID, productID, size); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}
