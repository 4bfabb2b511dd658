// Package booking содержит серверный сценарий бронирования «в один шаг»:
// аренда, мок-контракт и его деплой выполняются одной транзакцией,
// повторный запрос с тем же ключом идемпотентности возвращает сохранённый
// результат без повторного бронирования.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/rentchain/rentchain/internal/lib/ethaddr"
	"github.com/rentchain/rentchain/internal/models"
	"github.com/rentchain/rentchain/internal/rabbitmq"
	"github.com/rentchain/rentchain/internal/services/catalog"
	"github.com/rentchain/rentchain/internal/services/rental"
)

// idempotencyTTL время жизни сохранённого результата бронирования.
const idempotencyTTL = 24 * time.Hour

// Repository определяет методы хранилища, нужные сценарию бронирования.
type Repository interface {
	GetProperty(ctx context.Context, id int) (*models.Property, error)
	CreateBooking(ctx context.Context, rental models.Rental,
		contractAddress, deploymentHash string) (*models.BookingResult, error)
}

// BookedEvent событие успешного бронирования, уходящее в очередь.
type BookedEvent struct {
	RentalID        int     `json:"rental_id"`
	PropertyID      int     `json:"property_id"`
	RenterID        int     `json:"renter_id"`
	ContractAddress string  `json:"contract_address"`
	TotalPrice      float64 `json:"total_price"`
}

// Service реализует серверный сценарий бронирования.
type Service struct {
	repo     Repository
	cache    catalog.Cache
	notifier rental.Notifier // nil, если публикация событий отключена
	log      *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, cache catalog.Cache, notifier rental.Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

// Book выполняет бронирование объекта: считает стоимость по цене объекта
// и длительности периода, создает аренду с контрактом одной транзакцией
// и сохраняет результат под ключом идемпотентности.
func (s *Service) Book(ctx context.Context, req models.DummyBooking) (*models.BookingResult, error) {
	idemKey := req.IdempotencyKey
	if idemKey == "" {
		idemKey = uuid.New().String()
	}
	cacheKey := idempotencyCacheKey(idemKey)

	var cached *models.BookingResult
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read booking idempotency key",
			slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		s.log.Info("replayed booking by idempotency key",
			slog.Int("rental_id", cached.Rental.ID))
		return cached, nil
	}

	startDate, endDate, err := rental.ParseDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	property, err := s.repo.GetProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	days := rentalDays(startDate, endDate)
	totalPrice := float64(days) * property.Price

	result, err := s.repo.CreateBooking(ctx, models.Rental{
		PropertyID:      req.PropertyID,
		RenterID:        req.RenterID,
		StartDate:       startDate,
		EndDate:         endDate,
		TotalPrice:      totalPrice,
		SecurityDeposit: property.SecurityDeposit,
	}, ethaddr.NewAddress(), ethaddr.NewTxHash())
	if err != nil {
		return nil, err
	}

	s.log.Info("booked property",
		slog.Int("rental_id", result.Rental.ID),
		slog.Int("property_id", req.PropertyID),
		slog.String("contract_address", result.Contract.ContractAddress))

	if err := s.cache.Set(cacheKey, result, idempotencyTTL); err != nil {
		s.log.Warn("failed to store booking idempotency key",
			slog.String("key", cacheKey), slog.Any("err", err))
	}
	propertyKey := catalog.PropertyCacheKey(req.PropertyID)
	if err := s.cache.Invalidate(propertyKey); err != nil {
		s.log.Warn("failed to invalidate property cache",
			slog.String("key", propertyKey), slog.Any("err", err))
	}

	if s.notifier != nil {
		event := BookedEvent{
			RentalID:        result.Rental.ID,
			PropertyID:      req.PropertyID,
			RenterID:        req.RenterID,
			ContractAddress: result.Contract.ContractAddress,
			TotalPrice:      totalPrice,
		}
		if err := s.notifier.Publish(rabbitmq.RoutingKeyBooked, event); err != nil {
			s.log.Warn("failed to publish booked event", slog.Any("err", err))
		}
	}
	return result, nil
}

// rentalDays считает длительность периода в сутках, неполные сутки
// округляются вверх. Период короче суток оплачивается как одни сутки.
func rentalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

func idempotencyCacheKey(key string) string {
	return fmt.Sprintf("booking:idem:%s", key)
}
