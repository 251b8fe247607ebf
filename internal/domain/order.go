package domain

import "time"

type Order struct {
	ID               string      `json:"id"`
	CustomerID       string      `json:"customerId"`
	Items            []OrderItem `json:"items"`
	TotalCents       int64       `json:"totalCents"`
	DiscountCents    int64       `json:"discountCents"`
	DeliveryFeeCents int64       `json:"deliveryFeeCents"`
	FinalCents       int64       `json:"finalCents"`
	AppliedOffer     string      `json:"appliedOffer,omitempty"`
	Phone            string      `json:"phone,omitempty"`
	Address          string      `json:"address,omitempty"`
	PaymentMethod    string      `json:"paymentMethod"`
	Status           string      `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// OrderItem snapshots a cart line at checkout time so later catalog edits do
// not rewrite order history.
type OrderItem struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	Image          string `json:"image,omitempty"`
	Size           string `json:"size"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// Order statuses as exposed to the storefront.
const (
	OrderStatusPlaced    = "Placed"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)
