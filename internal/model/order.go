package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed out of s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// TransitionPolicy decides which status transitions are legal. The strict
// policy enforces the forward-only fulfilment machine; the lenient policy
// allows any transition between known statuses (admin correction mode).
type TransitionPolicy func(from, to OrderStatus) bool

// StrictTransitionPolicy allows pending -> processing -> shipped -> delivered,
// with cancellation as a side exit from any non-terminal state.
func StrictTransitionPolicy(from, to OrderStatus) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusProcessing
	case StatusProcessing:
		return to == StatusShipped
	case StatusShipped:
		return to == StatusDelivered
	}
	return false
}

// LenientTransitionPolicy allows any transition between known statuses.
func LenientTransitionPolicy(from, to OrderStatus) bool {
	return from.Valid() && to.Valid()
}

// PaymentMethod is the (simulated) payment instrument for an order.
type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "credit_card"
	PaymentDebitCard      PaymentMethod = "debit_card"
	PaymentPaypal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentPaypal, PaymentCashOnDelivery:
		return true
	}
	return false
}

// Shipping pricing: flat rate below the free-shipping threshold.
const (
	FreeShippingThreshold = 50.00
	FlatShippingCost      = 10.00
)

// ShippingCost returns the shipping charge for a given subtotal.
func ShippingCost(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingCost
}

// RoundCurrency rounds a monetary amount to two decimal places.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// ShippingAddress is the destination recorded on an order.
type ShippingAddress struct {
	FullName   string `json:"fullName" db:"full_name"`
	Address    string `json:"address" db:"address"`
	City       string `json:"city" db:"city"`
	PostalCode string `json:"postalCode" db:"postal_code"`
	Country    string `json:"country" db:"country"`
}

// Complete reports whether the mandatory address fields are present.
// FullName is optional here: it may be backfilled from the user profile.
func (a ShippingAddress) Complete() bool {
	return a.Address != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

// Order represents a customer order. Item snapshots and totals are frozen
// at creation; later catalogue edits never alter historical orders.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"userId" db:"user_id"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod" db:"payment_method"`
	Subtotal        float64         `json:"subtotal" db:"subtotal"`
	ShippingCost    float64         `json:"shippingCost" db:"shipping_cost"`
	Total           float64         `json:"total" db:"total"`
	Status          OrderStatus     `json:"status" db:"status"`
	IsPaid          bool            `json:"isPaid" db:"is_paid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" db:"paid_at"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" db:"delivered_at"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item with the product name, price and image copied
// from the catalogue at order-creation time.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Quantity  int       `json:"quantity" db:"quantity"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	Rated     bool      `json:"rated" db:"rated"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress ShippingAddress    `json:"shippingAddress"`
	PaymentMethod   PaymentMethod      `json:"paymentMethod"`
}

// OrderItemRequest is a single product reference in an order request.
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product"`
	Quantity  int       `json:"quantity"`
}

// StatusUpdateRequest represents the payload for an admin status change.
type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}
