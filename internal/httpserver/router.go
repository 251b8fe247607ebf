package httpserver

import (
	"context"
	"errors"
	"log"

	"citimart/internal/auth"
	"citimart/internal/domain"
	cartrepo "citimart/internal/repository/cart"
	wishlistrepo "citimart/internal/repository/wishlist"
	checkoutsvc "citimart/internal/service/checkout"
	customersvc "citimart/internal/service/customer"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CartService is the slice of the cart service the handlers need.
type CartService interface {
	Get(ctx context.Context, customerID string) ([]cartrepo.Item, error)
	Add(ctx context.Context, customerID, productID, size string, quantity int) error
	UpdateQuantity(ctx context.Context, customerID, productID, size string, quantity int) error
	Remove(ctx context.Context, customerID, productID, size string) error
	Clear(ctx context.Context, customerID string) error
}

type WishlistService interface {
	List(ctx context.Context, customerID string) ([]wishlistrepo.Item, error)
	Add(ctx context.Context, customerID, productID, size string) error
	Remove(ctx context.Context, customerID, productID, size string) error
	MoveToCart(ctx context.Context, customerID, productID, size string, quantity int) error
}

type CheckoutService interface {
	Checkout(ctx context.Context, customerID string, in checkoutsvc.Input) (*domain.Order, error)
}

type OrderLister interface {
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

type OfferLister interface {
	ListValid(ctx context.Context) ([]domain.Offer, error)
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type CustomerService interface {
	Register(ctx context.Context, in customersvc.RegisterInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, string, error)
	TokenTTLSeconds() int
}

// Deps bundles the services the router depends on.
type Deps struct {
	CartSvc     CartService
	WishlistSvc WishlistService
	CheckoutSvc CheckoutService
	Orders      OrderLister
	Offers      OfferLister
	ProductSvc  ProductService
	CustomerSvc CustomerService
	Tokens      *auth.Manager
}

func (d Deps) validate() error {
	switch {
	case d.CartSvc == nil:
		return errors.New("cart service is required")
	case d.WishlistSvc == nil:
		return errors.New("wishlist service is required")
	case d.CheckoutSvc == nil:
		return errors.New("checkout service is required")
	case d.Orders == nil:
		return errors.New("order lister is required")
	case d.Offers == nil:
		return errors.New("offer lister is required")
	case d.ProductSvc == nil:
		return errors.New("product service is required")
	case d.CustomerSvc == nil:
		return errors.New("customer service is required")
	case d.Tokens == nil:
		return errors.New("token manager is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = allowedOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/auth/register", registerHandler(deps.CustomerSvc))
	router.POST("/auth/login", loginHandler(deps.CustomerSvc))

	router.GET("/products", listProductsHandler(deps.ProductSvc))
	router.GET("/products/:id", getProductHandler(deps.ProductSvc))
	router.GET("/offers", listOffersHandler(deps.Offers))

	authed := router.Group("/", requireAuth(deps.Tokens))
	{
		authed.GET("/cart/:customerID", getCartHandler(deps.CartSvc))
		authed.POST("/cart/add", addToCartHandler(deps.CartSvc))
		authed.POST("/cart/update_quantity", updateQuantityHandler(deps.CartSvc))
		authed.DELETE("/cart/remove_item", removeItemHandler(deps.CartSvc))
		authed.DELETE("/cart/clear/:customerID", clearCartHandler(deps.CartSvc))

		authed.GET("/wishlist/:customerID", getWishlistHandler(deps.WishlistSvc))
		authed.POST("/wishlist/add", addToWishlistHandler(deps.WishlistSvc))
		authed.POST("/wishlist/remove", removeFromWishlistHandler(deps.WishlistSvc))
		authed.POST("/wishlist/move_to_cart", moveToCartHandler(deps.WishlistSvc))

		authed.POST("/checkout", checkoutHandler(deps.CheckoutSvc))
		authed.GET("/orders/:customerID", listOrdersHandler(deps.Orders))
	}

	return router, nil
}
