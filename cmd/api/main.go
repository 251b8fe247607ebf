package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"citimart/internal/auth"
	"citimart/internal/config"
	"citimart/internal/db"
	"citimart/internal/httpserver"
	cartrepo "citimart/internal/repository/cart"
	customerrepo "citimart/internal/repository/customer"
	offerrepo "citimart/internal/repository/offer"
	orderrepo "citimart/internal/repository/order"
	productrepo "citimart/internal/repository/product"
	wishlistrepo "citimart/internal/repository/wishlist"
	cartsvc "citimart/internal/service/cart"
	checkoutsvc "citimart/internal/service/checkout"
	customersvc "citimart/internal/service/customer"
	productsvc "citimart/internal/service/product"
	wishlistsvc "citimart/internal/service/wishlist"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	tokens, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		logger.Fatalf("init token manager: %v", err)
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	wishlistRepo := wishlistrepo.NewPostgres(dbpool)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool)
	offerRepo := offerrepo.NewPostgres(dbpool)

	productService := productsvc.New(productRepo)
	cartService := cartsvc.New(cartRepo, productRepo)
	wishlistService := wishlistsvc.New(wishlistRepo, productRepo, cartService)
	checkoutService := checkoutsvc.New(cartRepo, offerRepo, orderRepo, cfg.Pricing)
	customerService := customersvc.New(customerRepo, tokens)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:     cartService,
		WishlistSvc: wishlistService,
		CheckoutSvc: checkoutService,
		Orders:      orderRepo,
		Offers:      offerRepo,
		ProductSvc:  productService,
		CustomerSvc: customerService,
		Tokens:      tokens,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
