package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	policy      model.TransitionPolicy
	logger      zerolog.Logger
}

// NewOrderService creates a new order service. The transition policy decides
// which admin status changes are legal; pass model.StrictTransitionPolicy for
// the forward-only fulfilment machine.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	policy model.TransitionPolicy,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		policy:      policy,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// Create validates the cart against live inventory, freezes the item snapshot
// and totals, and persists the order with stock decremented. Stock decrement
// and the order insert run in one transaction; any failure rolls everything
// back, so no partial stock mutation ever survives.
func (s *orderService) Create(ctx context.Context, user *model.User, req *model.OrderRequest) (*model.Order, error) {
	if err := s.validateOrderRequest(user, req); err != nil {
		return nil, err
	}

	// Batch-resolve every referenced product.
	productIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to resolve products")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	byID := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, item := range req.Items {
		if _, ok := byID[item.ProductID]; !ok {
			s.logger.Warn().Str("product_id", item.ProductID.String()).Msg("product not found")
			return nil, model.NewProductNotFoundError(item.ProductID.String())
		}
	}

	// Pre-check stock per line, in request order, for descriptive failures
	// before any mutation. The authoritative check is the conditional
	// decrement inside the transaction below.
	for _, item := range req.Items {
		product := byID[item.ProductID]
		if product.Stock < item.Quantity {
			s.logger.Warn().
				Str("product_id", item.ProductID.String()).
				Int("requested", item.Quantity).
				Int("available", product.Stock).
				Msg("insufficient stock")
			return nil, model.NewInsufficientStockError(product.Name, item.Quantity, product.Stock)
		}
	}

	// Compute totals from current prices, frozen into the order.
	var subtotal float64
	for _, item := range req.Items {
		subtotal += byID[item.ProductID].Price * float64(item.Quantity)
	}
	subtotal = model.RoundCurrency(subtotal)
	shippingCost := model.ShippingCost(subtotal)
	total := model.RoundCurrency(subtotal + shippingCost)

	now := time.Now()
	order := &model.Order{
		ID:              uuid.New(),
		UserID:          user.ID,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		Total:           total,
		Status:          model.StatusPending,
		IsPaid:          true, // payment is simulated as always successful
		PaidAt:          &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if order.ShippingAddress.FullName == "" {
		order.ShippingAddress.FullName = user.Name
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		product := byID[item.ProductID]
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
			ImageURL:  product.ImageURL,
		}
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	// Atomic conditional decrement per line item. A concurrent order that
	// raced us past the pre-check loses here instead of overselling.
	for _, item := range req.Items {
		product := byID[item.ProductID]
		var ok bool
		ok, err = s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			s.logger.Error().Err(err).
				Str("order_id", order.ID.String()).
				Str("product_id", item.ProductID.String()).
				Msg("failed to decrement stock")
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		if !ok {
			err = model.NewInsufficientStockError(product.Name, item.Quantity, product.Stock)
			return nil, err
		}
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.Items = items

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", user.ID.String()).
		Int("item_count", len(items)).
		Float64("total", order.Total).
		Msg("order created successfully")

	return order, nil
}

// GetByID retrieves one order. Only the owner or an admin may fetch it.
func (s *orderService) GetByID(ctx context.Context, requester *model.User, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if order.UserID != requester.ID && !requester.IsAdmin() {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("requester_id", requester.ID.String()).
			Msg("order access denied")
		return nil, model.ErrNotAuthorized
	}

	return order, nil
}

// ListMine retrieves the user's orders, newest first.
func (s *orderService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListAll retrieves all orders, newest first.
func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list all orders")
		return nil, fmt.Errorf("failed to list all orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus transitions an order to a new status. Only a transition into
// delivered stamps the delivery time; other targets leave it untouched.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !s.policy(order.Status, status) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(order.Status)).
			Str("to", string(status)).
			Msg("status transition rejected")
		return nil, model.NewInvalidTransitionError(order.Status, status)
	}

	var deliveredAt *time.Time
	if status == model.StatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}

	ok, err := s.orderRepo.UpdateStatus(ctx, id, status, deliveredAt)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if !ok {
		return nil, model.ErrOrderNotFound
	}

	order.Status = status
	if deliveredAt != nil {
		order.DeliveredAt = deliveredAt
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return order, nil
}

// validateOrderRequest runs the fail-fast validation sequence. Each check
// short-circuits with its own domain error before any mutation happens.
func (s *orderService) validateOrderRequest(user *model.User, req *model.OrderRequest) error {
	if req == nil || len(req.Items) == 0 {
		return model.ErrEmptyCart
	}

	if !req.ShippingAddress.Complete() {
		return model.ErrIncompleteAddress
	}

	if !req.PaymentMethod.Valid() {
		return model.ErrInvalidPaymentMethod
	}

	for i, item := range req.Items {
		if item.ProductID == uuid.Nil {
			return model.NewDomainError(model.ErrCodeValidationError,
				fmt.Sprintf("item %d: product reference is required", i))
		}
		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID.String()).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}
