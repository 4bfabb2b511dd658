package booking

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
	"github.com/rentchain/rentchain/internal/storage/repository"
)

// MockRepository реализует интерфейс booking.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProperty(ctx context.Context, id int) (*models.Property, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) CreateBooking(ctx context.Context, rental models.Rental,
	contractAddress, deploymentHash string) (*models.BookingResult, error) {
	args := m.Called(ctx, rental, contractAddress, deploymentHash)
	if res := args.Get(0); res != nil {
		return res.(*models.BookingResult), args.Error(1)
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

func TestService_Book(t *testing.T) {
	req := models.DummyBooking{
		PropertyID:     1,
		RenterID:       2,
		StartDate:      "2026-09-01T00:00:00Z",
		EndDate:        "2026-09-05T00:00:00Z",
		IdempotencyKey: "8e2d9f4a-5c1b-4d6e-9f3a-2b7c8d1e0a4f",
	}

	t.Run("успешное бронирование считает стоимость по длительности", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)

		cache.On("Get", "booking:idem:"+req.IdempotencyKey, mock.Anything).Return(false, nil)
		repo.On("GetProperty", mock.Anything, 1).
			Return(&models.Property{ID: 1, Price: 0.5, SecurityDeposit: 1.0}, nil)
		repo.On("CreateBooking", mock.Anything,
			mock.MatchedBy(func(r models.Rental) bool {
				// 4 суток по 0.5 ETH
				return r.TotalPrice == 2.0 && r.SecurityDeposit == 1.0
			}), mock.Anything, mock.Anything).
			Return(&models.BookingResult{
				Rental:   &models.Rental{ID: 10, PropertyID: 1, Status: models.RentalStatusActive},
				Contract: &models.SmartContract{ID: 7, RentalID: 10, IsDeployed: true},
			}, nil)
		cache.On("Set", "booking:idem:"+req.IdempotencyKey, mock.Anything, idempotencyTTL).Return(nil)
		cache.On("Invalidate", "property:1").Return(nil)

		service := NewService(repo, cache, nil, newTestLogger())

		result, err := service.Book(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 10, result.Rental.ID)
		assert.True(t, result.Contract.IsDeployed)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("повтор с тем же ключом возвращает сохранённый результат", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)

		cache.On("Get", "booking:idem:"+req.IdempotencyKey, mock.Anything).
			Run(func(args mock.Arguments) {
				dst := args.Get(1).(**models.BookingResult)
				*dst = &models.BookingResult{
					Rental:   &models.Rental{ID: 10, PropertyID: 1},
					Contract: &models.SmartContract{ID: 7, RentalID: 10},
				}
			}).Return(true, nil)

		service := NewService(repo, cache, nil, newTestLogger())

		result, err := service.Book(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 10, result.Rental.ID)

		// Повторное бронирование не выполняется
		repo.AssertNotCalled(t, "CreateBooking",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		cache.AssertExpectations(t)
	})

	t.Run("занятый объект возвращает ошибку без записи ключа", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)

		cache.On("Get", mock.Anything, mock.Anything).Return(false, nil)
		repo.On("GetProperty", mock.Anything, 1).
			Return(&models.Property{ID: 1, Price: 0.5, SecurityDeposit: 1.0}, nil)
		repo.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, repository.ErrPropertyUnavailable)

		service := NewService(repo, cache, nil, newTestLogger())

		result, err := service.Book(context.Background(), req)
		require.ErrorIs(t, err, repository.ErrPropertyUnavailable)
		assert.Nil(t, result)

		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRentalDays(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 4, rentalDays(start, start.AddDate(0, 0, 4)))
	// Неполные сутки округляются вверх
	assert.Equal(t, 2, rentalDays(start, start.Add(30*time.Hour)))
	// Период короче суток оплачивается как одни сутки
	assert.Equal(t, 1, rentalDays(start, start.Add(2*time.Hour)))
}
