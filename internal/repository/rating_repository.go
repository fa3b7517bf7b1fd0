package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ratingRepository implements the RatingRepository interface using PostgreSQL.
type ratingRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRatingRepository creates a new PostgreSQL-backed rating repository.
func NewRatingRepository(pool *pgxpool.Pool, logger zerolog.Logger) RatingRepository {
	return &ratingRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "rating").Logger(),
	}
}

// Upsert inserts the user's rating for a product or overwrites the existing
// one. One rating per user per product; the latest submission wins.
func (r *ratingRepository) Upsert(ctx context.Context, tx pgx.Tx, rating *model.Rating) error {
	query := `
		INSERT INTO ratings (id, product_id, user_id, stars, review, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id, user_id) DO UPDATE
		SET stars = EXCLUDED.stars,
			review = EXCLUDED.review,
			created_at = EXCLUDED.created_at
	`

	_, err := tx.Exec(ctx, query,
		rating.ID, rating.ProductID, rating.UserID, rating.Stars, rating.Review, rating.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", rating.ProductID.String()).
			Str("user_id", rating.UserID.String()).
			Msg("failed to upsert rating")
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	r.logger.Debug().
		Str("product_id", rating.ProductID.String()).
		Str("user_id", rating.UserID.String()).
		Int("stars", rating.Stars).
		Msg("rating upserted")

	return nil
}

// ListByProduct retrieves all ratings for a product, newest first.
func (r *ratingRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Rating, error) {
	query := `
		SELECT id, product_id, user_id, stars, review, created_at
		FROM ratings
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to query ratings")
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []model.Rating
	for rows.Next() {
		var rt model.Rating
		err := rows.Scan(&rt.ID, &rt.ProductID, &rt.UserID, &rt.Stars, &rt.Review, &rt.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan rating row")
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rt)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating rating rows")
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}

	return ratings, nil
}
