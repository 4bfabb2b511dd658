// Package status реализует HTTP-обработчик смены статуса сделки аренды.
//
// Перевод в completed или cancelled возвращает объекту доступность
// в той же транзакции и публикует событие rental.status.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/rentchain/rentchain/internal/http/response"
	"github.com/rentchain/rentchain/internal/lib/sl"
	"github.com/rentchain/rentchain/internal/models"
	rentalsvc "github.com/rentchain/rentchain/internal/services/rental"
	"github.com/rentchain/rentchain/internal/storage/repository"
)

// Handler управляет HTTP-запросами на смену статуса аренды.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики смены статуса.
type Service interface {
	UpdateStatus(ctx context.Context, id int, status string) (*models.Rental, error)
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
// @Summary Сменить статус сделки аренды
// @Description Переводит сделку в новый статус: pending, active, completed или cancelled.
// @Tags Rentals
// @Accept  json
// @Produce  json
// @Param id path int true "ID сделки"
// @Param request body models.DummyStatus true "Новый статус"
// @Success 200 {object} models.Rental "Обновленная сделка"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID, JSON или статус"
// @Failure 404 {object} response.ErrorResponse "Сделка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /rentals/{id}/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid rental id"))
		return
	}

	var req models.DummyStatus
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

	rental, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, rentalsvc.ErrInvalidStatus):
			log.Error("invalid rental status", slog.String("status", req.Status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid rental status"))
		case errors.Is(err, repository.ErrNotFound):
			log.Error("rental not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("rental not found"))
		default:
			log.Error("failed to update rental status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update rental status"))
		}
		return
	}

	log.Info("success to update rental status",
		slog.Int("id", rental.ID), slog.String("status", rental.Status))
	render.JSON(w, r, rental)
}
