package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name            string
	Description     string
	Category        string
	PriceCents      int64
	DiscountPercent int
	Sizes           []string
	Images          []string
	Stock           int
}

type offerSeed struct {
	Code             string
	Title            string
	Type             string
	AmountCents      int64
	Percent          int
	MinPurchaseCents int64
	Category         string
	FlatPriceCents   int64
	ValidDays        int
}

// Apply inserts catalog and offer data for manual testing. It is idempotent
// via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:        "Casual Cotton Shirt",
			Description: "Breathable everyday shirt in washed cotton",
			Category:    "Shirts",
			PriceCents:  99900,
			Sizes:       []string{"S", "M", "L", "XL"},
			Images:      []string{"/images/casual-shirt.jpg"},
			Stock:       40,
		},
		{
			Name:            "Slim Fit Jeans",
			Description:     "Stretch denim with a tapered leg",
			Category:        "Jeans",
			PriceCents:      129900,
			DiscountPercent: 10,
			Sizes:           []string{"30", "32", "34", "36"},
			Images:          []string{"/images/slim-jeans.jpg"},
			Stock:           25,
		},
		{
			Name:        "Denim Jacket",
			Description: "Classic trucker jacket in mid-wash denim",
			Category:    "Jackets",
			PriceCents:  249900,
			Sizes:       []string{"M", "L", "XL"},
			Images:      []string{"/images/denim-jacket.jpg"},
			Stock:       12,
		},
		{
			Name:        "Canvas Sneakers",
			Description: "Low-top sneakers with a rubber sole",
			Category:    "Footwear",
			PriceCents:  179900,
			Sizes:       []string{"7", "8", "9", "10", "11"},
			Images:      []string{"/images/canvas-sneakers.jpg"},
			Stock:       30,
		},
		{
			Name:        "Graphic Tee",
			Description: "Soft jersey tee with a front print",
			Category:    "Shirts",
			PriceCents:  49900,
			Sizes:       []string{"S", "M", "L"},
			Images:      []string{"/images/graphic-tee.jpg"},
			Stock:       60,
		},
	}

	offers := []offerSeed{
		{Code: "NEW100", Title: "Flat 100 off", Type: "flat", AmountCents: 10000, MinPurchaseCents: 99900, ValidDays: 90},
		{Code: "SAVE10", Title: "10% off", Type: "percent", Percent: 10, MinPurchaseCents: 149900, ValidDays: 60},
		{Code: "SHIPFREE", Title: "Free Shipping", Type: "free_shipping", ValidDays: 30},
		{Code: "TEE499", Title: "Shirts at 499", Type: "flat_price", Category: "Shirts", FlatPriceCents: 49900, ValidDays: 45},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	for _, o := range offers {
		if err := upsertOffer(ctx, pool, o); err != nil {
			return fmt.Errorf("upsert offer %s: %w", o.Code, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, category, price_cents, discount_percent, sizes, images, stock, active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
ON CONFLICT (name) DO UPDATE
SET description = EXCLUDED.description,
    category = EXCLUDED.category,
    price_cents = EXCLUDED.price_cents,
    discount_percent = EXCLUDED.discount_percent,
    sizes = EXCLUDED.sizes,
    images = EXCLUDED.images,
    stock = EXCLUDED.stock,
    active = EXCLUDED.active
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.Category, p.PriceCents, p.DiscountPercent, p.Sizes, p.Images, p.Stock)
	return err
}

func upsertOffer(ctx context.Context, pool *pgxpool.Pool, o offerSeed) error {
	const q = `
INSERT INTO offers (code, title, type, amount_cents, percent, min_purchase_cents, category, flat_price_cents, valid_till)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (code) DO UPDATE
SET title = EXCLUDED.title,
    type = EXCLUDED.type,
    amount_cents = EXCLUDED.amount_cents,
    percent = EXCLUDED.percent,
    min_purchase_cents = EXCLUDED.min_purchase_cents,
    category = EXCLUDED.category,
    flat_price_cents = EXCLUDED.flat_price_cents,
    valid_till = EXCLUDED.valid_till
`
	validTill := time.Now().AddDate(0, 0, o.ValidDays)
	_, err := pool.Exec(ctx, q, o.Code, o.Title, o.Type, o.AmountCents, o.Percent, o.MinPurchaseCents, o.Category, o.FlatPriceCents, validTill)
	return err
}
