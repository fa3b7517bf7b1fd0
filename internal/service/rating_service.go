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

// ratingService implements RatingService.
type ratingService struct {
	ratingRepo  repository.RatingRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	logger      zerolog.Logger
}

// NewRatingService creates a new rating service.
func NewRatingService(
	ratingRepo repository.RatingRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	logger zerolog.Logger,
) RatingService {
	return &ratingService{
		ratingRepo:  ratingRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		logger:      logger.With().Str("service", "rating").Logger(),
	}
}

// Rate submits the user's rating for a product. Eligibility requires a
// delivered order containing the product with an unrated line item; all
// qualifying items already rated means AlreadyRated, none at all means
// NotEligibleToRate. The rating upsert, the product summary refresh and the
// line-item rated flag are written in one transaction.
func (s *ratingService) Rate(ctx context.Context, user *model.User, productID uuid.UUID, req *model.RatingRequest) (*model.RatingSummary, error) {
	if req == nil || req.Stars < 1 || req.Stars > 5 {
		return nil, model.ErrInvalidRating
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	items, err := s.orderRepo.ListDeliveredItems(ctx, user.ID, productID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("user_id", user.ID.String()).
			Str("product_id", productID.String()).
			Msg("failed to check rating eligibility")
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}

	if len(items) == 0 {
		s.logger.Warn().
			Str("user_id", user.ID.String()).
			Str("product_id", productID.String()).
			Msg("user not eligible to rate product")
		return nil, model.ErrNotEligibleToRate
	}

	// Prefer the oldest unrated qualifying item; each qualifying order item
	// grants one rating submission.
	var eligible *model.OrderItem
	for i := range items {
		if !items[i].Rated {
			eligible = &items[i]
			break
		}
	}
	if eligible == nil {
		return nil, model.ErrAlreadyRated
	}

	// Merge the submission into the current ratings to compute the new
	// summary before writing anything.
	ratings, err := s.ratingRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to list ratings")
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}

	total := 0
	count := 0
	replaced := false
	for _, r := range ratings {
		if r.UserID == user.ID {
			total += req.Stars
			replaced = true
		} else {
			total += r.Stars
		}
		count++
	}
	if !replaced {
		total += req.Stars
		count++
	}
	average := model.RoundCurrency(float64(total) / float64(count))

	rating := &model.Rating{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    user.ID,
		Stars:     req.Stars,
		Review:    req.Review,
		CreatedAt: time.Now(),
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.ratingRepo.Upsert(ctx, tx, rating); err != nil {
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}

	if err = s.productRepo.UpdateRatingSummary(ctx, tx, productID, average, count); err != nil {
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}

	if err = s.orderRepo.MarkItemRated(ctx, tx, eligible.ID); err != nil {
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to commit rating")
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}

	s.logger.Info().
		Str("product_id", productID.String()).
		Str("user_id", user.ID.String()).
		Int("stars", req.Stars).
		Float64("average", average).
		Msg("rating submitted")

	return &model.RatingSummary{
		AverageRating: average,
		TotalRatings:  count,
		UserRating:    req.Stars,
	}, nil
}

// ListByProduct retrieves a product's ratings, newest first.
func (s *ratingService) ListByProduct(ctx context.Context, productID uuid.UUID) (*model.ProductRatings, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	ratings, err := s.ratingRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to list ratings")
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}

	return &model.ProductRatings{
		AverageRating: product.AverageRating,
		TotalRatings:  product.TotalRatings,
		Ratings:       ratings,
	}, nil
}
