package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		body           string
		mockResp       *model.AuthResponse
		mockError      error
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Success",
			body: `{"email": "jane@example.com", "password": "hunter22", "name": "Jane Doe"}`,
			mockResp: &model.AuthResponse{
				ID: uuid.New(), Email: "jane@example.com", Name: "Jane Doe",
				Role: model.RoleCustomer, Token: "signed-token",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Malformed JSON",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Email taken",
			body:           `{"email": "jane@example.com", "password": "hunter22", "name": "Jane Doe"}`,
			mockError:      model.ErrEmailTaken,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			handler := NewAuthHandler(mockService, logger)

			if tt.mockResp != nil || tt.mockError != nil {
				mockService.On("Register", mock.Anything, mock.AnythingOfType("*model.RegisterRequest")).
					Return(tt.mockResp, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Register(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedCode, resp.Error)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		body           string
		mockResp       *model.AuthResponse
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"email": "jane@example.com", "password": "hunter22"}`,
			mockResp:       &model.AuthResponse{ID: uuid.New(), Token: "signed-token"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Bad credentials map to 401",
			body:           `{"email": "jane@example.com", "password": "wrong"}`,
			mockError:      model.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			handler := NewAuthHandler(mockService, logger)

			mockService.On("Login", mock.Anything, mock.AnythingOfType("*model.LoginRequest")).
				Return(tt.mockResp, tt.mockError)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthHandler_Profile(t *testing.T) {
	logger := zerolog.Nop()
	user := &model.User{ID: uuid.New(), Email: "jane@example.com", Name: "Jane Doe"}

	mockService := new(MockAuthService)
	handler := NewAuthHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req = asUser(req, user)
	w := httptest.NewRecorder()

	handler.Profile(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp model.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, user.Email, resp.Email)
}

func TestAnalyticsHandler_Report(t *testing.T) {
	logger := zerolog.Nop()

	report := &model.AnalyticsReport{
		Stats: model.AnalyticsStats{TotalRevenue: 100.00, TotalOrders: 3},
	}

	tests := []struct {
		name           string
		query          string
		expectedRange  model.TimeRange
		expectedStatus int
	}{
		{name: "Defaults to month", query: "", expectedRange: model.RangeMonth, expectedStatus: http.StatusOK},
		{name: "Explicit range", query: "?range=week", expectedRange: model.RangeWeek, expectedStatus: http.StatusOK},
		{name: "Unknown range", query: "?range=fortnight", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAnalyticsService)
			handler := NewAnalyticsHandler(mockService, logger)

			if tt.expectedStatus == http.StatusOK {
				mockService.On("Report", mock.Anything, tt.expectedRange).Return(report, nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/analytics"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.Report(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
