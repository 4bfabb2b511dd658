// Package create реализует HTTP-обработчик создания нового объекта аренды.
//
// Handler принимает JSON-запрос с данными объекта, валидирует их, вызывает
// бизнес-логику создания и возвращает созданный объект. Владелец и категория
// должны существовать, счётчик объявлений категории увеличивается в той же
// транзакции.
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
	"github.com/rentchain/rentchain/internal/storage/repository"
)

// Handler управляет HTTP-запросами на создание объектов аренды.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики каталога
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания объекта.
type Service interface {
	CreateProperty(ctx context.Context, req models.DummyProperty) (*models.Property, error)
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
// @Summary Создать объект аренды
// @Description Создает объект аренды. Владелец и категория должны существовать.
// @Tags Properties
// @Accept  json
// @Produce  json
// @Param request body models.DummyProperty true "Данные нового объекта"
// @Success 201 {object} models.Property "Созданный объект"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ошибка валидации"
// @Failure 404 {object} response.ErrorResponse "Владелец или категория не найдены"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /properties [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.property.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyProperty
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

	property, err := h.service.CreateProperty(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("owner or category not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("owner or category not found"))
			return
		}
		log.Error("failed to create property", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create property"))
		return
	}

	log.Info("success to create property", slog.Int("id", property.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, property)
}
