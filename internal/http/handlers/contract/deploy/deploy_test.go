package deploy

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rentchain/rentchain/internal/models"
	"github.com/rentchain/rentchain/internal/storage/repository"
)

// MockService реализует интерфейс deploy.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Deploy(ctx context.Context, id int) (*models.SmartContract, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.SmartContract), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestDeployHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	deploymentHash := "0x" + strings.Repeat("ab", 32)

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный деплой контракта",
			id:   "7",
			setupMock: func(m *MockService) {
				m.On("Deploy", mock.Anything, 7).Return(&models.SmartContract{
					ID:             7,
					RentalID:       10,
					IsDeployed:     true,
					DeploymentHash: &deploymentHash,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"transaction_hash":"` + deploymentHash + `"`,
		},
		{
			name:           "некорректный id в URL",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid contract id"}`,
		},
		{
			name: "контракт не найден",
			id:   "99",
			setupMock: func(m *MockService) {
				m.On("Deploy", mock.Anything, 99).Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"smart contract not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/smart-contracts/"+tt.id+"/deploy", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
