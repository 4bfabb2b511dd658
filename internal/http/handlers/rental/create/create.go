// Package create реализует HTTP-обработчик создания сделки аренды.
//
// Handler принимает JSON-запрос с данными аренды, валидирует их, вызывает
// бизнес-логику и возвращает созданную сделку. Объект должен существовать
// и быть доступным, доступность снимается в той же транзакции.
package create

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

// Handler управляет HTTP-запросами на создание сделок аренды.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики аренды
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания аренды.
type Service interface {
	Create(ctx context.Context, req models.DummyRental) (*models.Rental, error)
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
// @Summary Создать сделку аренды
// @Description Создает сделку аренды в статусе pending и помечает объект занятым.
// @Tags Rentals
// @Accept  json
// @Produce  json
// @Param request body models.DummyRental true "Данные новой аренды"
// @Success 201 {object} models.Rental "Созданная сделка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, даты или объект занят"
// @Failure 404 {object} response.ErrorResponse "Объект не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /rentals [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRental
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

	rental, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, rentalsvc.ErrInvalidDates):
			log.Error("invalid rental dates", sl.Err(err))
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
			log.Error("failed to create rental", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create rental"))
		}
		return
	}

	log.Info("success to create rental", slog.Int("id", rental.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, rental)
}
