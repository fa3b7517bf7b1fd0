package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a sellable catalogue item.
type Product struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	Price         float64   `json:"price" db:"price"`
	Category      string    `json:"category" db:"category"`
	ImageURL      string    `json:"imageUrl" db:"image_url"`
	Stock         int       `json:"stock" db:"stock"`
	Featured      bool      `json:"featured" db:"featured"`
	AverageRating float64   `json:"averageRating" db:"average_rating"`
	TotalRatings  int       `json:"totalRatings" db:"total_ratings"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductRequest represents the payload for creating or updating a product.
// On update, nil pointer fields and empty strings keep the current values.
type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	ImageURL    string   `json:"imageUrl"`
	Stock       *int     `json:"stock"`
	Featured    *bool    `json:"featured"`
}

// Rating is one user's rating of one product. A user holds at most one
// rating per product; resubmission overwrites it.
type Rating struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Stars     int       `json:"stars" db:"stars"`
	Review    string    `json:"review" db:"review"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// RatingRequest represents the payload for submitting a rating.
type RatingRequest struct {
	Stars  int    `json:"stars"`
	Review string `json:"review"`
}

// RatingSummary is returned after a rating submission.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
	UserRating    int     `json:"userRating"`
}

// ProductRatings is the public view of a product's ratings, newest first.
type ProductRatings struct {
	AverageRating float64  `json:"averageRating"`
	TotalRatings  int      `json:"totalRatings"`
	Ratings       []Rating `json:"ratings"`
}
