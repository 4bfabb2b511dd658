// Package book реализует HTTP-обработчик серверного бронирования «в один шаг».
//
// Handler принимает объект, арендатора, период и необязательный ключ
// идемпотентности. Аренда, контракт и деплой выполняются одной транзакцией,
// повторный запрос с тем же ключом возвращает сохранённый результат.
package book

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/rentchain/rentchain/internal/http/response"
	"github.com/rentchain/rentchain/internal/lib/sl"
	"github.com/rentchain/rentchain/internal/models"
	rentalsvc "github.com/rentchain/rentchain/internal/services/rental"
	"github.com/rentchain/rentchain/internal/storage/repository"
)

// Handler управляет HTTP-запросами на бронирование.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис сценария бронирования
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс сценария бронирования.
type Service interface {
	Book(ctx context.Context, req models.DummyBooking) (*models.BookingResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Забронировать объект аренды
// @Description Создает аренду, мок-контракт и его деплой одной транзакцией. Повторный запрос с тем же ключом идемпотентности возвращает сохранённый результат.
// @Tags Bookings
// @Accept  json
// @Produce  json
// @Param request body models.DummyBooking true "Данные бронирования"
// @Success 201 {object} models.BookingResult "Созданная аренда и контракт"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, даты или объект занят"
// @Failure 404 {object} response.ErrorResponse "Объект не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /bookings [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.book"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBooking
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.Book(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, rentalsvc.ErrInvalidDates):
			log.Error("invalid booking dates", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("end date must be after start date"))
		case errors.Is(err, repository.ErrPropertyUnavailable):
			log.Error("property is not available", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("property is not available"))
		case errors.Is(err, repository.ErrNotFound):
			log.Error("property not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("property not found"))
		default:
			log.Error("failed to book property", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not book property"))
		}
		return
	}

	log.Info("success to book property",
		slog.Int("rental_id", result.Rental.ID),
		slog.Int("contract_id", result.Contract.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, result)
}
