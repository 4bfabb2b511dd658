package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rentchain/rentchain/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListProperties(ctx context.Context, categoryID, ownerID *int) ([]*models.Property, error) {
	args := m.Called(ctx, categoryID, ownerID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "список без фильтров",
			url:  "/properties",
			setupMock: func(m *MockService) {
				m.On("ListProperties", mock.Anything, (*int)(nil), (*int)(nil)).
					Return([]*models.Property{{ID: 1, Title: "Tesla Model 3"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Tesla Model 3"`,
		},
		{
			name: "фильтр по категории",
			url:  "/properties?categoryId=2",
			setupMock: func(m *MockService) {
				categoryID := 2
				m.On("ListProperties", mock.Anything, &categoryID, (*int)(nil)).
					Return([]*models.Property{{ID: 4, CategoryID: 2}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"categoryId":2`,
		},
		{
			name:           "нечисловой categoryId отклоняется",
			url:            "/properties?categoryId=abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid categoryId`,
		},
		{
			name: "ошибка сервиса",
			url:  "/properties",
			setupMock: func(m *MockService) {
				m.On("ListProperties", mock.Anything, (*int)(nil), (*int)(nil)).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not list properties"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
