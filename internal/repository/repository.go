package repository

import (
	"context"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user account.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email, or nil if absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID, or nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// CountCustomers counts customer accounts created at or after since.
	// A zero since counts all customers.
	CountCustomers(ctx context.Context, since time.Time) (int, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves products newest first with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// Count returns the total number of products.
	Count(ctx context.Context) (int, error)

	// GetByID retrieves a single product by its ID, or nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update overwrites an existing product. Returns false if the product
	// does not exist.
	Update(ctx context.Context, product *model.Product) (bool, error)

	// Delete removes a product. Returns false if the product does not exist.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// Upsert inserts the product or overwrites the existing row with the
	// same ID. Used by the catalogue bulk import.
	Upsert(ctx context.Context, product *model.Product) error

	// DecrementStock atomically decrements stock by quantity if and only if
	// enough stock remains. Returns false when the conditional update
	// matched no row (insufficient stock or unknown product).
	DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) (bool, error)

	// UpdateRatingSummary sets the denormalised average rating and count
	// within the provided transaction.
	UpdateRatingSummary(ctx context.Context, tx pgx.Tx, id uuid.UUID, average float64, count int) error

	// ListLowStock retrieves in-stock products at or below the threshold,
	// lowest stock first.
	ListLowStock(ctx context.Context, threshold, limit int) ([]model.Product, error)

	// CountOutOfStock counts products with zero stock.
	CountOutOfStock(ctx context.Context) (int, error)
}

// RatingRepository defines the interface for product rating data access.
type RatingRepository interface {
	// Upsert inserts the user's rating for a product or overwrites the
	// existing one, within the provided transaction.
	Upsert(ctx context.Context, tx pgx.Tx, rating *model.Rating) error

	// ListByProduct retrieves all ratings for a product, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Rating, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's line items within the provided
	// transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items, or nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders with items, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves all orders with items, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// ListCreatedBetween retrieves orders with items created in [from, to).
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]model.Order, error)

	// UpdateStatus sets the order status and, when deliveredAt is non-nil,
	// the delivery timestamp. Returns false if the order does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, deliveredAt *time.Time) (bool, error)

	// ListDeliveredItems retrieves the user's line items for a product from
	// delivered orders, oldest order first.
	ListDeliveredItems(ctx context.Context, userID, productID uuid.UUID) ([]model.OrderItem, error)

	// MarkItemRated flips a line item's rated flag within the provided
	// transaction.
	MarkItemRated(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) error
}
