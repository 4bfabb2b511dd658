// Package rentchain собирает приложение маркетплейса аренды: хранилище,
// миграции, кеш, публикацию событий, сервисы и HTTP-сервер.
package rentchain

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/rentchain/rentchain/internal/cache"
	"github.com/rentchain/rentchain/internal/config"
	"github.com/rentchain/rentchain/internal/migrations"
	"github.com/rentchain/rentchain/internal/rabbitmq"
	bookingservice "github.com/rentchain/rentchain/internal/services/booking"
	catalogservice "github.com/rentchain/rentchain/internal/services/catalog"
	contractservice "github.com/rentchain/rentchain/internal/services/contract"
	rentalservice "github.com/rentchain/rentchain/internal/services/rental"
	userservice "github.com/rentchain/rentchain/internal/services/user"
	"github.com/rentchain/rentchain/internal/storage/repository"
)

// App инкапсулирует собранное приложение и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	rabbit *rabbitmq.Publisher // nil, если адрес RabbitMQ не задан
}

// New собирает приложение по конфигурации: подключает PostgreSQL,
// применяет миграции, подключает Redis и RabbitMQ, строит сервисы
// и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var publisher *rabbitmq.Publisher
	if cfg.AddressRabbit != "" {
		conn, err := rabbitmq.Connect(cfg.AddressRabbit, cfg.Retries, cfg.RetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn)
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch)
	} else {
		logger.Warn("rabbitmq address is not set, events are disabled")
	}

	userService := userservice.NewService(db, logger)
	catalogService := catalogservice.NewService(db, cacheRedis, logger)
	rentalService := rentalservice.NewService(db, cacheRedis, notifier(publisher), logger)
	contractService := contractservice.NewService(db, logger)
	bookingService := bookingservice.NewService(db, cacheRedis, notifier(publisher), logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db,
		userService, catalogService, rentalService, contractService, bookingService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		rabbit: publisher,
	}, nil
}

// notifier приводит *Publisher к интерфейсу так, чтобы nil-указатель
// остался nil-интерфейсом и публикация событий была отключена.
func notifier(p *rabbitmq.Publisher) rentalservice.Notifier {
	if p == nil {
		return nil
	}
	return p
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
