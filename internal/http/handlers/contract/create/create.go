// Package create реализует HTTP-обработчик создания мок-контракта эскроу.
//
// Контракт связывается со сделкой аренды один-к-одному, адрес и идентификатор
// контракта проставляются на сделке в той же транзакции.
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

// Handler управляет HTTP-запросами на создание мок-контрактов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания контракта.
type Service interface {
	Create(ctx context.Context, req models.DummyContract) (*models.SmartContract, error)
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
// @Summary Создать смарт-контракт
// @Description Создает мок-контракт эскроу для сделки аренды. На сделку может существовать только один контракт.
// @Tags SmartContracts
// @Accept  json
// @Produce  json
// @Param request body models.DummyContract true "Данные нового контракта"
// @Success 201 {object} models.SmartContract "Созданный контракт"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, ошибка валидации или контракт уже существует"
// @Failure 404 {object} response.ErrorResponse "Сделка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /smart-contracts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyContract
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

	contract, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrContractExists):
			log.Error("contract already exists", slog.Int("rental_id", req.RentalID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("smart contract already exists for this rental"))
		case errors.Is(err, repository.ErrNotFound):
			log.Error("rental not found", slog.Int("rental_id", req.RentalID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("rental not found"))
		default:
			log.Error("failed to create smart contract", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create smart contract"))
		}
		return
	}

	log.Info("success to create smart contract", slog.Int("id", contract.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, contract)
}
