package catalog

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

// MockRepository реализует интерфейс catalog.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if res := args.Get(0); res != nil {
		return res.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) CreateProperty(ctx context.Context, property models.Property) (*models.Property, error) {
	args := m.Called(ctx, property)
	if res := args.Get(0); res != nil {
		return res.(*models.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetProperty(ctx context.Context, id int) (*models.Property, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListProperties(ctx context.Context) ([]*models.Property, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListPropertiesByCategory(ctx context.Context, categoryID int) ([]*models.Property, error) {
	args := m.Called(ctx, categoryID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListPropertiesByOwner(ctx context.Context, ownerID int) ([]*models.Property, error) {
	args := m.Called(ctx, ownerID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) UpdateProperty(ctx context.Context, id int, upd models.DummyPropertyUpdate) (*models.Property, error) {
	args := m.Called(ctx, id, upd)
	if res := args.Get(0); res != nil {
		return res.(*models.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) DeleteProperty(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
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

func TestService_GetProperty(t *testing.T) {
	t.Run("попадание в кеш не обращается к хранилищу", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)

		cache.On("Get", "property:1", mock.Anything).
			Run(func(args mock.Arguments) {
				dst := args.Get(1).(**models.Property)
				*dst = &models.Property{ID: 1, Title: "Tesla Model 3"}
			}).Return(true, nil)

		service := NewService(repo, cache, newTestLogger())

		property, err := service.GetProperty(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Tesla Model 3", property.Title)

		repo.AssertNotCalled(t, "GetProperty", mock.Anything, mock.Anything)
	})

	t.Run("промах кеша читает хранилище и кеширует", func(t *testing.T) {
		repo := new(MockRepository)
		cache := new(MockCache)

		cache.On("Get", "property:1", mock.Anything).Return(false, nil)
		repo.On("GetProperty", mock.Anything, 1).
			Return(&models.Property{ID: 1, Title: "Tesla Model 3"}, nil)
		cache.On("Set", "property:1", mock.Anything, time.Hour).Return(nil)

		service := NewService(repo, cache, newTestLogger())

		property, err := service.GetProperty(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 1, property.ID)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
}

func TestService_ListProperties(t *testing.T) {
	categoryID := 2
	ownerID := 3

	tests := []struct {
		name       string
		categoryID *int
		ownerID    *int
		setupMock  func(*MockRepository)
	}{
		{
			name:       "фильтр по категории имеет приоритет",
			categoryID: &categoryID,
			ownerID:    &ownerID,
			setupMock: func(repo *MockRepository) {
				repo.On("ListPropertiesByCategory", mock.Anything, 2).
					Return([]*models.Property{{ID: 1}}, nil)
			},
		},
		{
			name:    "фильтр по владельцу",
			ownerID: &ownerID,
			setupMock: func(repo *MockRepository) {
				repo.On("ListPropertiesByOwner", mock.Anything, 3).
					Return([]*models.Property{{ID: 1}}, nil)
			},
		},
		{
			name: "без фильтров возвращаются все объекты",
			setupMock: func(repo *MockRepository) {
				repo.On("ListProperties", mock.Anything).
					Return([]*models.Property{{ID: 1}, {ID: 2}}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			cache := new(MockCache)
			tt.setupMock(repo)

			service := NewService(repo, cache, newTestLogger())

			properties, err := service.ListProperties(context.Background(), tt.categoryID, tt.ownerID)
			require.NoError(t, err)
			assert.NotEmpty(t, properties)

			repo.AssertExpectations(t)
		})
	}
}

func TestService_DeleteProperty(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)

	cache.On("Invalidate", "property:4").Return(nil)
	repo.On("DeleteProperty", mock.Anything, 4).Return(nil)

	service := NewService(repo, cache, newTestLogger())

	require.NoError(t, service.DeleteProperty(context.Background(), 4))
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
