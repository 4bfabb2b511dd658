// Package catalog содержит бизнес-логику каталога: категории и объекты
// аренды, включая кеширование карточек объектов.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rentchain/rentchain/internal/models"
)

// Repository определяет методы хранилища, нужные сервису каталога.
type Repository interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateProperty(ctx context.Context, property models.Property) (*models.Property, error)
	GetProperty(ctx context.Context, id int) (*models.Property, error)
	ListProperties(ctx context.Context) ([]*models.Property, error)
	ListPropertiesByCategory(ctx context.Context, categoryID int) ([]*models.Property, error)
	ListPropertiesByOwner(ctx context.Context, ownerID int) ([]*models.Property, error)
	UpdateProperty(ctx context.Context, id int, upd models.DummyPropertyUpdate) (*models.Property, error)
	DeleteProperty(ctx context.Context, id int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует бизнес-логику каталога, включая кеширование.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// PropertyCacheKey возвращает ключ кеша для карточки объекта.
func PropertyCacheKey(id int) string {
	return fmt.Sprintf("property:%d", id)
}

// ListCategories возвращает все категории.
func (s *Service) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.repo.ListCategories(ctx)
}

// GetCategoryBySlug возвращает категорию по слагу.
func (s *Service) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.repo.GetCategoryBySlug(ctx, slug)
}

// CreateProperty создает новый объект аренды и кеширует его карточку.
func (s *Service) CreateProperty(ctx context.Context, req models.DummyProperty) (*models.Property, error) {
	created, err := s.repo.CreateProperty(ctx, models.Property{
		Title:           req.Title,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		Price:           req.Price,
		SecurityDeposit: req.SecurityDeposit,
		Location:        req.Location,
		OwnerID:         req.OwnerID,
		CategoryID:      req.CategoryID,
		Features:        req.Features,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("created new property", slog.Int("id", created.ID))

	cacheKey := PropertyCacheKey(created.ID)
	if err := s.cache.Set(cacheKey, created, time.Hour); err != nil {
		s.log.Warn("failed to cache property", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return created, nil
}

// GetProperty возвращает объект аренды по ID, используя кеш или репозиторий.
func (s *Service) GetProperty(ctx context.Context, id int) (*models.Property, error) {
	var result *models.Property
	cacheKey := PropertyCacheKey(id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read property from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache property", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// ListProperties возвращает объекты аренды с учетом фильтров.
// Фильтр по категории имеет приоритет над фильтром по владельцу.
func (s *Service) ListProperties(ctx context.Context, categoryID, ownerID *int) ([]*models.Property, error) {
	switch {
	case categoryID != nil:
		return s.repo.ListPropertiesByCategory(ctx, *categoryID)
	case ownerID != nil:
		return s.repo.ListPropertiesByOwner(ctx, *ownerID)
	default:
		return s.repo.ListProperties(ctx)
	}
}

// UpdateProperty выполняет частичное обновление объекта и обновляет кеш.
func (s *Service) UpdateProperty(ctx context.Context, id int, upd models.DummyPropertyUpdate) (*models.Property, error) {
	updated, err := s.repo.UpdateProperty(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	cacheKey := PropertyCacheKey(id)
	if err := s.cache.Set(cacheKey, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache property", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return updated, nil
}

// DeleteProperty удаляет объект аренды и инвалидирует кеш.
func (s *Service) DeleteProperty(ctx context.Context, id int) error {
	cacheKey := PropertyCacheKey(id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove property from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return s.repo.DeleteProperty(ctx, id)
}
