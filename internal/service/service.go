package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// AuthService defines operations for account management and login.
type AuthService interface {
	// Register creates a customer account and issues a bearer token.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and issues a bearer token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// GetUser resolves a user by ID. Used by the auth middleware.
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// ProductService defines operations for catalogue management.
type ProductService interface {
	// GetAll retrieves products newest first with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create adds a new product to the catalogue.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update modifies an existing product. Zero-valued request fields keep
	// the current values.
	Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product from the catalogue.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService defines operations for order placement and fulfilment.
type OrderService interface {
	// Create validates the cart against live inventory, freezes the item
	// snapshot and totals, and persists the order with stock decremented.
	Create(ctx context.Context, user *model.User, req *model.OrderRequest) (*model.Order, error)

	// GetByID retrieves one order. Only the owner or an admin may fetch it.
	GetByID(ctx context.Context, requester *model.User, id uuid.UUID) (*model.Order, error)

	// ListMine retrieves the user's orders, newest first.
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves all orders, newest first. Admin only (enforced by
	// the router).
	ListAll(ctx context.Context) ([]model.Order, error)

	// UpdateStatus transitions an order to a new status, stamping the
	// delivery time when the target is delivered.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
}

// RatingService defines operations for post-delivery product ratings.
type RatingService interface {
	// Rate submits the user's rating for a product they have purchased and
	// received, and refreshes the product's rating summary.
	Rate(ctx context.Context, user *model.User, productID uuid.UUID, req *model.RatingRequest) (*model.RatingSummary, error)

	// ListByProduct retrieves a product's ratings, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID) (*model.ProductRatings, error)
}

// AnalyticsService defines the admin dashboard report.
type AnalyticsService interface {
	// Report aggregates orders, products and users over the given range.
	Report(ctx context.Context, timeRange model.TimeRange) (*model.AnalyticsReport, error)
}
