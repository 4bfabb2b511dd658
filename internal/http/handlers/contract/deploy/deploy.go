// Package deploy реализует HTTP-обработчик симуляции деплоя мок-контракта.
//
// Деплой генерирует псевдослучайный хэш транзакции, отмечает контракт
// задеплоенным и переводит связанную сделку аренды в статус active.
package deploy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/rentchain/rentchain/internal/http/response"
	"github.com/rentchain/rentchain/internal/lib/sl"
	"github.com/rentchain/rentchain/internal/models"
	"github.com/rentchain/rentchain/internal/storage/repository"
)

// Handler управляет HTTP-запросами на деплой мок-контрактов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики деплоя контракта.
type Service interface {
	Deploy(ctx context.Context, id int) (*models.SmartContract, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Задеплоить смарт-контракт
// @Description Симулирует деплой контракта: генерирует хэш транзакции и активирует сделку аренды.
// @Tags SmartContracts
// @Produce  json
// @Param id path int true "ID контракта"
// @Success 200 {object} map[string]any "Контракт и хэш транзакции"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Контракт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /smart-contracts/{id}/deploy [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.deploy"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid contract id"))
		return
	}

	contract, err := h.service.Deploy(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("contract not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("smart contract not found"))
			return
		}
		log.Error("failed to deploy smart contract", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not deploy smart contract"))
		return
	}

	log.Info("success to deploy smart contract", slog.Int("id", contract.ID))
	render.JSON(w, r, map[string]any{
		"contract":         contract,
		"transaction_hash": contract.DeploymentHash,
	})
}
