package service

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRatingService_Rate_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	user := testCustomer()
	productID := uuid.New()

	product := &model.Product{ID: productID, Name: "Widget", AverageRating: 4.0, TotalRatings: 2}
	items := []model.OrderItem{
		{ID: uuid.New(), ProductID: productID, Rated: false},
	}
	existing := []model.Rating{
		{ID: uuid.New(), ProductID: productID, UserID: uuid.New(), Stars: 5},
		{ID: uuid.New(), ProductID: productID, UserID: uuid.New(), Stars: 3},
	}

	mockRatingRepo := new(MockRatingRepository)
	mockProductRepo := new(MockProductRepository)
	mockOrderRepo := new(MockOrderRepository)
	mockTx := new(MockTx)

	service := NewRatingService(mockRatingRepo, mockProductRepo, mockOrderRepo, logger)

	mockProductRepo.On("GetByID", ctx, productID).Return(product, nil)
	mockOrderRepo.On("ListDeliveredItems", ctx, user.ID, productID).Return(items, nil)
	mockRatingRepo.On("ListByProduct", ctx, productID).Return(existing, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRatingRepo.On("Upsert", ctx, mockTx, mock.AnythingOfType("*model.Rating")).Return(nil)
	// [5, 3, 4] averages to exactly 4.00
	mockProductRepo.On("UpdateRatingSummary", ctx, mockTx, productID, 4.00, 3).Return(nil)
	mockOrderRepo.On("MarkItemRated", ctx, mockTx, items[0].ID).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	summary, err := service.Rate(ctx, user, productID, &model.RatingRequest{Stars: 4, Review: "Solid"})

	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 4.00, summary.AverageRating)
	assert.Equal(t, 3, summary.TotalRatings)
	assert.Equal(t, 4, summary.UserRating)

	mockRatingRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
	mockOrderRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestRatingService_Rate_ResubmissionReplacesOwnRating(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	user := testCustomer()
	productID := uuid.New()

	product := &model.Product{ID: productID, Name: "Widget"}
	// Two qualifying orders: the first item already rated, the second not.
	items := []model.OrderItem{
		{ID: uuid.New(), ProductID: productID, Rated: true},
		{ID: uuid.New(), ProductID: productID, Rated: false},
	}
	existing := []model.Rating{
		{ID: uuid.New(), ProductID: productID, UserID: user.ID, Stars: 3},
		{ID: uuid.New(), ProductID: productID, UserID: uuid.New(), Stars: 5},
		{ID: uuid.New(), ProductID: productID, UserID: uuid.New(), Stars: 4},
	}

	mockRatingRepo := new(MockRatingRepository)
	mockProductRepo := new(MockProductRepository)
	mockOrderRepo := new(MockOrderRepository)
	mockTx := new(MockTx)

	service := NewRatingService(mockRatingRepo, mockProductRepo, mockOrderRepo, logger)

	mockProductRepo.On("GetByID", ctx, productID).Return(product, nil)
	mockOrderRepo.On("ListDeliveredItems", ctx, user.ID, productID).Return(items, nil)
	mockRatingRepo.On("ListByProduct", ctx, productID).Return(existing, nil)
	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockRatingRepo.On("Upsert", ctx, mockTx, mock.AnythingOfType("*model.Rating")).Return(nil)
	// Own 3 replaced by 5: [5, 5, 4] averages to 4.67, count stays 3
	mockProductRepo.On("UpdateRatingSummary", ctx, mockTx, productID, 4.67, 3).Return(nil)
	mockOrderRepo.On("MarkItemRated", ctx, mockTx, items[1].ID).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	summary, err := service.Rate(ctx, user, productID, &model.RatingRequest{Stars: 5})

	require.NoError(t, err)
	assert.Equal(t, 4.67, summary.AverageRating)
	assert.Equal(t, 3, summary.TotalRatings)

	mockProductRepo.AssertExpectations(t)
	mockOrderRepo.AssertExpectations(t)
}

func TestRatingService_Rate_Eligibility(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	user := testCustomer()
	productID := uuid.New()
	product := &model.Product{ID: productID, Name: "Widget"}

	tests := []struct {
		name         string
		items        []model.OrderItem
		expectedCode string
	}{
		{
			name:         "No delivered orders",
			items:        []model.OrderItem{},
			expectedCode: model.ErrCodeNotEligibleToRate,
		},
		{
			name: "All qualifying items already rated",
			items: []model.OrderItem{
				{ID: uuid.New(), ProductID: productID, Rated: true},
				{ID: uuid.New(), ProductID: productID, Rated: true},
			},
			expectedCode: model.ErrCodeAlreadyRated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRatingRepo := new(MockRatingRepository)
			mockProductRepo := new(MockProductRepository)
			mockOrderRepo := new(MockOrderRepository)

			service := NewRatingService(mockRatingRepo, mockProductRepo, mockOrderRepo, logger)

			mockProductRepo.On("GetByID", ctx, productID).Return(product, nil)
			mockOrderRepo.On("ListDeliveredItems", ctx, user.ID, productID).Return(tt.items, nil)

			summary, err := service.Rate(ctx, user, productID, &model.RatingRequest{Stars: 5})

			require.Error(t, err)
			assert.Nil(t, summary)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.expectedCode, domainErr.Code)

			mockOrderRepo.AssertNotCalled(t, "BeginTx")
		})
	}
}

func TestRatingService_Rate_InvalidStars(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	user := testCustomer()
	productID := uuid.New()

	mockRatingRepo := new(MockRatingRepository)
	mockProductRepo := new(MockProductRepository)
	mockOrderRepo := new(MockOrderRepository)

	service := NewRatingService(mockRatingRepo, mockProductRepo, mockOrderRepo, logger)

	for _, stars := range []int{0, -1, 6, 100} {
		summary, err := service.Rate(ctx, user, productID, &model.RatingRequest{Stars: stars})

		require.Error(t, err)
		assert.Nil(t, summary)
		assert.Equal(t, model.ErrInvalidRating, err)
	}

	mockProductRepo.AssertNotCalled(t, "GetByID")
}

func TestRatingService_Rate_ProductNotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	user := testCustomer()
	productID := uuid.New()

	mockRatingRepo := new(MockRatingRepository)
	mockProductRepo := new(MockProductRepository)
	mockOrderRepo := new(MockOrderRepository)

	service := NewRatingService(mockRatingRepo, mockProductRepo, mockOrderRepo, logger)

	mockProductRepo.On("GetByID", ctx, productID).Return(nil, nil)

	summary, err := service.Rate(ctx, user, productID, &model.RatingRequest{Stars: 4})

	require.Error(t, err)
	assert.Nil(t, summary)
	assert.Equal(t, model.ErrProductNotFound, err)
}

func TestRatingService_ListByProduct(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	productID := uuid.New()

	product := &model.Product{ID: productID, Name: "Widget", AverageRating: 4.5, TotalRatings: 2}
	ratings := []model.Rating{
		{ID: uuid.New(), ProductID: productID, Stars: 5, CreatedAt: time.Now()},
		{ID: uuid.New(), ProductID: productID, Stars: 4, CreatedAt: time.Now().Add(-time.Hour)},
	}

	mockRatingRepo := new(MockRatingRepository)
	mockProductRepo := new(MockProductRepository)
	mockOrderRepo := new(MockOrderRepository)

	service := NewRatingService(mockRatingRepo, mockProductRepo, mockOrderRepo, logger)

	mockProductRepo.On("GetByID", ctx, productID).Return(product, nil)
	mockRatingRepo.On("ListByProduct", ctx, productID).Return(ratings, nil)

	resp, err := service.ListByProduct(ctx, productID)

	require.NoError(t, err)
	assert.Equal(t, 4.5, resp.AverageRating)
	assert.Equal(t, 2, resp.TotalRatings)
	assert.Equal(t, ratings, resp.Ratings)
}

func TestRatingService_ListByProduct_ProductNotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	productID := uuid.New()

	mockRatingRepo := new(MockRatingRepository)
	mockProductRepo := new(MockProductRepository)
	mockOrderRepo := new(MockOrderRepository)

	service := NewRatingService(mockRatingRepo, mockProductRepo, mockOrderRepo, logger)

	mockProductRepo.On("GetByID", ctx, productID).Return(nil, nil)

	resp, err := service.ListByProduct(ctx, productID)

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, model.ErrProductNotFound, err)
}
