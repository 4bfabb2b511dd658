package rental

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rentchain/rentchain/internal/models"
)

// MockRepository реализует интерфейс rental.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateRental(ctx context.Context, rental models.Rental) (*models.Rental, error) {
	args := m.Called(ctx, rental)
	if res := args.Get(0); res != nil {
		return res.(*models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetRental(ctx context.Context, id int) (*models.Rental, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListRentalsByRenter(ctx context.Context, renterID int) ([]*models.Rental, error) {
	args := m.Called(ctx, renterID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListRentalsByProperty(ctx context.Context, propertyID int) ([]*models.Rental, error) {
	args := m.Called(ctx, propertyID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) UpdateRentalStatus(ctx context.Context, id int, status string) (*models.Rental, error) {
	args := m.Called(ctx, id, status)
	if res := args.Get(0); res != nil {
		return res.(*models.Rental), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCache реализует интерфейс catalog.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       models.DummyRental
		setupMock func(*MockRepository, *MockCache)
		wantErr   error
	}{
		{
			name: "успешное создание аренды",
			req: models.DummyRental{
				PropertyID:      1,
				RenterID:        2,
				StartDate:       "2026-09-01T00:00:00Z",
				EndDate:         "2026-09-05T00:00:00Z",
				TotalPrice:      2.0,
				SecurityDeposit: 1.0,
			},
			setupMock: func(repo *MockRepository, cache *MockCache) {
				repo.On("CreateRental", mock.Anything, mock.Anything).
					Return(&models.Rental{ID: 10, PropertyID: 1}, nil)
				cache.On("Invalidate", "property:1").Return(nil)
			},
		},
		{
			name: "дата окончания раньше даты начала",
			req: models.DummyRental{
				PropertyID: 1,
				RenterID:   2,
				StartDate:  "2026-09-05T00:00:00Z",
				EndDate:    "2026-09-01T00:00:00Z",
			},
			setupMock: func(_ *MockRepository, _ *MockCache) {},
			wantErr:   ErrInvalidDates,
		},
		{
			name: "даты не парсятся",
			req: models.DummyRental{
				PropertyID: 1,
				RenterID:   2,
				StartDate:  "not-a-date",
				EndDate:    "2026-09-01T00:00:00Z",
			},
			setupMock: func(_ *MockRepository, _ *MockCache) {},
			wantErr:   ErrInvalidDates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			cache := new(MockCache)
			tt.setupMock(repo, cache)

			service := NewService(repo, cache, nil, newTestLogger())

			got, err := service.Create(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 10, got.ID)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		setupMock func(*MockRepository, *MockCache)
		wantErr   error
	}{
		{
			name:   "перевод в completed",
			status: models.RentalStatusCompleted,
			setupMock: func(repo *MockRepository, cache *MockCache) {
				repo.On("UpdateRentalStatus", mock.Anything, 5, models.RentalStatusCompleted).
					Return(&models.Rental{ID: 5, PropertyID: 3, Status: models.RentalStatusCompleted}, nil)
				cache.On("Invalidate", "property:3").Return(nil)
			},
		},
		{
			name:      "неизвестный статус отклоняется",
			status:    "canceled",
			setupMock: func(_ *MockRepository, _ *MockCache) {},
			wantErr:   ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			cache := new(MockCache)
			tt.setupMock(repo, cache)

			service := NewService(repo, cache, nil, newTestLogger())

			got, err := service.UpdateStatus(context.Background(), 5, tt.status)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.status, got.Status)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestParseDates(t *testing.T) {
	start, end, err := ParseDates("2026-09-01T00:00:00Z", "2026-09-05T00:00:00Z")
	require.NoError(t, err)
	assert.True(t, end.After(start))

	_, _, err = ParseDates("2026-09-01T00:00:00Z", "2026-09-01T00:00:00Z")
	assert.ErrorIs(t, err, ErrInvalidDates)
}
