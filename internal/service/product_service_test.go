package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestProductService_GetAll(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	products := []model.Product{
		{ID: uuid.New(), Name: "Widget", Price: 10.00, Category: "Tools"},
		{ID: uuid.New(), Name: "Gadget", Price: 20.00, Category: "Tools"},
	}

	tests := []struct {
		name           string
		limit          int
		offset         int
		expectedLimit  int
		expectedOffset int
	}{
		{name: "Defaults applied", limit: 0, offset: 0, expectedLimit: 20, expectedOffset: 0},
		{name: "Explicit paging", limit: 10, offset: 30, expectedLimit: 10, expectedOffset: 30},
		{name: "Limit capped", limit: 500, offset: 0, expectedLimit: 100, expectedOffset: 0},
		{name: "Negative offset reset", limit: 10, offset: -5, expectedLimit: 10, expectedOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewProductService(mockRepo, logger)

			mockRepo.On("GetAll", ctx, tt.expectedLimit, tt.expectedOffset).Return(products, nil)

			resp, err := service.GetAll(ctx, tt.limit, tt.offset)

			require.NoError(t, err)
			assert.Equal(t, products, resp)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	productID := uuid.New()

	tests := []struct {
		name        string
		mockProduct *model.Product
		mockError   error
		expectError bool
	}{
		{
			name:        "Success",
			mockProduct: &model.Product{ID: productID, Name: "Widget"},
		},
		{
			name:        "Not found",
			mockProduct: nil,
			expectError: true,
		},
		{
			name:        "Repository error",
			mockError:   errors.New("database error"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewProductService(mockRepo, logger)

			mockRepo.On("GetByID", ctx, productID).Return(tt.mockProduct, tt.mockError)

			resp, err := service.GetByID(ctx, productID)

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.mockProduct, resp)
			}
		})
	}
}

func TestProductService_Create(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo, logger)

	req := &model.ProductRequest{
		Name:     "Widget",
		Price:    floatPtr(19.999),
		Category: "Tools",
		Stock:    intPtr(5),
		Featured: boolPtr(true),
	}

	mockRepo.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	product, err := service.Create(ctx, req)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, "Widget", product.Name)
	// Price rounded to two decimal places
	assert.Equal(t, 20.00, product.Price)
	assert.Equal(t, 5, product.Stock)
	assert.True(t, product.Featured)

	mockRepo.AssertExpectations(t)
}

func TestProductService_Create_ValidationErrors(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo, logger)

	tests := []struct {
		name string
		req  *model.ProductRequest
	}{
		{name: "Nil request", req: nil},
		{name: "Missing name", req: &model.ProductRequest{Price: floatPtr(1), Category: "Tools"}},
		{name: "Missing category", req: &model.ProductRequest{Name: "Widget", Price: floatPtr(1)}},
		{name: "Missing price", req: &model.ProductRequest{Name: "Widget", Category: "Tools"}},
		{name: "Negative price", req: &model.ProductRequest{Name: "Widget", Category: "Tools", Price: floatPtr(-1)}},
		{name: "Negative stock", req: &model.ProductRequest{Name: "Widget", Category: "Tools", Price: floatPtr(1), Stock: intPtr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := service.Create(ctx, tt.req)

			require.Error(t, err)
			assert.Nil(t, product)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, model.ErrCodeValidationError, domainErr.Code)
		})
	}

	mockRepo.AssertNotCalled(t, "Create")
}

func TestProductService_Update_Partial(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	productID := uuid.New()

	current := &model.Product{
		ID:          productID,
		Name:        "Widget",
		Description: "Original description",
		Price:       10.00,
		Category:    "Tools",
		Stock:       5,
	}

	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo, logger)

	mockRepo.On("GetByID", ctx, productID).Return(current, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*model.Product")).Return(true, nil)

	// Only price and stock supplied; everything else keeps current values.
	req := &model.ProductRequest{
		Price: floatPtr(12.50),
		Stock: intPtr(8),
	}

	product, err := service.Update(ctx, productID, req)

	require.NoError(t, err)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, "Original description", product.Description)
	assert.Equal(t, 12.50, product.Price)
	assert.Equal(t, 8, product.Stock)

	mockRepo.AssertExpectations(t)
}

func TestProductService_Update_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	productID := uuid.New()

	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo, logger)

	mockRepo.On("GetByID", ctx, productID).Return(nil, nil)

	product, err := service.Update(ctx, productID, &model.ProductRequest{Name: "Widget"})

	require.Error(t, err)
	assert.Nil(t, product)
	assert.Equal(t, model.ErrProductNotFound, err)
}

func TestProductService_Delete(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	productID := uuid.New()

	tests := []struct {
		name        string
		deleted     bool
		mockError   error
		expectedErr error
	}{
		{name: "Success", deleted: true},
		{name: "Not found", deleted: false, expectedErr: model.ErrProductNotFound},
		{name: "Repository error", mockError: errors.New("database error"), expectedErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := NewProductService(mockRepo, logger)

			mockRepo.On("Delete", ctx, productID).Return(tt.deleted, tt.mockError)

			err := service.Delete(ctx, productID)

			if tt.deleted && tt.mockError == nil {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				if tt.expectedErr != nil {
					assert.Equal(t, tt.expectedErr, err)
				}
			}
		})
	}
}
