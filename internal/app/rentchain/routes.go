// Package rentchain предоставляет маршруты для основного приложения.
package rentchain

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	bookingbook "github.com/rentchain/rentchain/internal/http/handlers/booking/book"
	categorylist "github.com/rentchain/rentchain/internal/http/handlers/category/list"
	categoryread "github.com/rentchain/rentchain/internal/http/handlers/category/read"
	contractcreate "github.com/rentchain/rentchain/internal/http/handlers/contract/create"
	contractdeploy "github.com/rentchain/rentchain/internal/http/handlers/contract/deploy"
	contractread "github.com/rentchain/rentchain/internal/http/handlers/contract/read"
	"github.com/rentchain/rentchain/internal/http/handlers/health"
	propertycreate "github.com/rentchain/rentchain/internal/http/handlers/property/create"
	propertylist "github.com/rentchain/rentchain/internal/http/handlers/property/list"
	propertyread "github.com/rentchain/rentchain/internal/http/handlers/property/read"
	propertyremove "github.com/rentchain/rentchain/internal/http/handlers/property/remove"
	propertyupdate "github.com/rentchain/rentchain/internal/http/handlers/property/update"
	rentalcreate "github.com/rentchain/rentchain/internal/http/handlers/rental/create"
	rentallist "github.com/rentchain/rentchain/internal/http/handlers/rental/list"
	rentalread "github.com/rentchain/rentchain/internal/http/handlers/rental/read"
	rentalstatus "github.com/rentchain/rentchain/internal/http/handlers/rental/status"
	userconnectwallet "github.com/rentchain/rentchain/internal/http/handlers/user/connectwallet"
	usercreate "github.com/rentchain/rentchain/internal/http/handlers/user/create"
	userread "github.com/rentchain/rentchain/internal/http/handlers/user/read"
	"github.com/rentchain/rentchain/internal/http/middlewarectx"
	bookingservice "github.com/rentchain/rentchain/internal/services/booking"
	catalogservice "github.com/rentchain/rentchain/internal/services/catalog"
	contractservice "github.com/rentchain/rentchain/internal/services/contract"
	rentalservice "github.com/rentchain/rentchain/internal/services/rental"
	userservice "github.com/rentchain/rentchain/internal/services/user"
	"github.com/rentchain/rentchain/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	userService *userservice.Service, catalogService *catalogservice.Service,
	rentalService *rentalservice.Service, contractService *contractservice.Service,
	bookingService *bookingservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.RateLimitMiddleware(logger),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.New(logger, db).ServeHTTP)

		r.Post("/users", usercreate.New(logger, userService).ServeHTTP)
		r.Post("/users/connect-wallet", userconnectwallet.New(logger, userService).ServeHTTP)
		r.Get("/users/{id}", userread.New(logger, userService).ServeHTTP)

		r.Get("/categories", categorylist.New(logger, catalogService).ServeHTTP)
		r.Get("/categories/{slug}", categoryread.New(logger, catalogService).ServeHTTP)

		r.Get("/properties", propertylist.New(logger, catalogService).ServeHTTP)
		r.Post("/properties", propertycreate.New(logger, catalogService).ServeHTTP)
		r.Get("/properties/{id}", propertyread.New(logger, catalogService).ServeHTTP)
		r.Put("/properties/{id}", propertyupdate.New(logger, catalogService).ServeHTTP)
		r.Delete("/properties/{id}", propertyremove.New(logger, catalogService).ServeHTTP)

		r.Get("/rentals", rentallist.New(logger, rentalService).ServeHTTP)
		r.Post("/rentals", rentalcreate.New(logger, rentalService).ServeHTTP)
		r.Get("/rentals/{id}", rentalread.New(logger, rentalService).ServeHTTP)
		r.Patch("/rentals/{id}/status", rentalstatus.New(logger, rentalService).ServeHTTP)

		r.Post("/smart-contracts", contractcreate.New(logger, contractService).ServeHTTP)
		r.Get("/smart-contracts/rental/{rentalId}", contractread.New(logger, contractService).ServeHTTP)
		r.Post("/smart-contracts/{id}/deploy", contractdeploy.New(logger, contractService).ServeHTTP)

		r.Post("/bookings", bookingbook.New(logger, bookingService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
