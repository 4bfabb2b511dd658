// Package rental содержит бизнес-логику сделок аренды: создание,
// чтение, списки и переводы статуса с побочными эффектами на объекте.
package rental

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rentchain/rentchain/internal/models"
	"github.com/rentchain/rentchain/internal/rabbitmq"
	"github.com/rentchain/rentchain/internal/services/catalog"
)

// Ошибки бизнес-правил сделок аренды.
var (
	// ErrInvalidDates дата окончания не позже даты начала либо даты не парсятся.
	ErrInvalidDates = errors.New("end date must be after start date")
	// ErrInvalidStatus значение статуса вне перечня pending|active|completed|cancelled.
	ErrInvalidStatus = errors.New("invalid rental status")
)

// Repository определяет методы хранилища, нужные сервису аренды.
type Repository interface {
	CreateRental(ctx context.Context, rental models.Rental) (*models.Rental, error)
	GetRental(ctx context.Context, id int) (*models.Rental, error)
	ListRentalsByRenter(ctx context.Context, renterID int) ([]*models.Rental, error)
	ListRentalsByProperty(ctx context.Context, propertyID int) ([]*models.Rental, error)
	UpdateRentalStatus(ctx context.Context, id int, status string) (*models.Rental, error)
}

// Notifier публикует события жизненного цикла аренды.
type Notifier interface {
	Publish(routingKey string, message any) error
}

// StatusEvent событие смены статуса сделки, уходящее в очередь.
type StatusEvent struct {
	RentalID   int    `json:"rental_id"`
	PropertyID int    `json:"property_id"`
	Status     string `json:"status"`
}

// Service реализует бизнес-логику сделок аренды.
type Service struct {
	repo     Repository
	cache    catalog.Cache
	notifier Notifier // nil, если публикация событий отключена
	log      *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, cache catalog.Cache, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

// Create создает сделку аренды по данным запроса. Даты приходят в RFC3339.
// Занятый объект или несуществующий объект возвращаются ошибками хранилища.
func (s *Service) Create(ctx context.Context, req models.DummyRental) (*models.Rental, error) {
	startDate, endDate, err := ParseDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateRental(ctx, models.Rental{
		PropertyID:      req.PropertyID,
		RenterID:        req.RenterID,
		StartDate:       startDate,
		EndDate:         endDate,
		TotalPrice:      req.TotalPrice,
		SecurityDeposit: req.SecurityDeposit,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("created new rental", slog.Int("id", created.ID))
	s.invalidateProperty(created.PropertyID)
	return created, nil
}

// Read возвращает сделку аренды по ID.
func (s *Service) Read(ctx context.Context, id int) (*models.Rental, error) {
	return s.repo.GetRental(ctx, id)
}

// List возвращает сделки по арендатору либо по объекту.
// Ровно один из фильтров должен быть задан, это проверяет обработчик.
func (s *Service) List(ctx context.Context, renterID, propertyID *int) ([]*models.Rental, error) {
	if renterID != nil {
		return s.repo.ListRentalsByRenter(ctx, *renterID)
	}
	return s.repo.ListRentalsByProperty(ctx, *propertyID)
}

// UpdateStatus переводит сделку в новый статус и публикует событие.
func (s *Service) UpdateStatus(ctx context.Context, id int, status string) (*models.Rental, error) {
	if !models.ValidRentalStatus(status) {
		return nil, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateRentalStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.log.Info("updated rental status",
		slog.Int("id", updated.ID), slog.String("status", updated.Status))
	s.invalidateProperty(updated.PropertyID)

	if s.notifier != nil {
		event := StatusEvent{
			RentalID:   updated.ID,
			PropertyID: updated.PropertyID,
			Status:     updated.Status,
		}
		if err := s.notifier.Publish(rabbitmq.RoutingKeyStatus, event); err != nil {
			s.log.Warn("failed to publish status event", slog.Any("err", err))
		}
	}
	return updated, nil
}

// ParseDates разбирает пару дат RFC3339 и проверяет порядок периода.
func ParseDates(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", ErrInvalidDates)
	}
	endDate, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", ErrInvalidDates)
	}
	if !endDate.After(startDate) {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	return startDate, endDate, nil
}

// invalidateProperty сбрасывает кеш карточки объекта: доступность
// объекта меняется побочным эффектом операций над арендой.
func (s *Service) invalidateProperty(propertyID int) {
	cacheKey := catalog.PropertyCacheKey(propertyID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate property cache",
			slog.String("key", cacheKey), slog.Any("err", err))
	}
}
