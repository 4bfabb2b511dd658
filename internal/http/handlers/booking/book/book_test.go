package book

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rentchain/rentchain/internal/models"
	rentalsvc "github.com/rentchain/rentchain/internal/services/rental"
	"github.com/rentchain/rentchain/internal/storage/repository"
)

// MockService реализует интерфейс book.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Book(ctx context.Context, req models.DummyBooking) (*models.BookingResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.BookingResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestBookHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := `{"propertyId":1,"renterId":2,"startDate":"2026-09-01T00:00:00Z","endDate":"2026-09-05T00:00:00Z"}`

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное бронирование",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Book", mock.Anything, mock.Anything).Return(&models.BookingResult{
					Rental:   &models.Rental{ID: 10, Status: models.RentalStatusActive},
					Contract: &models.SmartContract{ID: 7, RentalID: 10, IsDeployed: true},
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"isDeployed":true`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"propertyId":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "ключ идемпотентности не uuid",
			body:           `{"propertyId":1,"renterId":2,"startDate":"2026-09-01T00:00:00Z","endDate":"2026-09-05T00:00:00Z","idempotencyKey":"not-a-uuid"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field IdempotencyKey can contain only uuid`,
		},
		{
			name: "некорректные даты",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Book", mock.Anything, mock.Anything).Return(nil, rentalsvc.ErrInvalidDates)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"end date must be after start date"}`,
		},
		{
			name: "объект занят",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Book", mock.Anything, mock.Anything).Return(nil, repository.ErrPropertyUnavailable)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"property is not available"}`,
		},
		{
			name: "объект не найден",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Book", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"property not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
