package read

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

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	ReadByRental(ctx context.Context, rentalID int) (*models.SmartContract, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить смарт-контракт по сделке
// @Description Возвращает мок-контракт, связанный со сделкой аренды.
// @Tags SmartContracts
// @Produce  json
// @Param rentalId path int true "ID сделки аренды"
// @Success 200 {object} models.SmartContract "Контракт"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Контракт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /smart-contracts/rental/{rentalId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contract.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rentalID, err := strconv.Atoi(chi.URLParam(r, "rentalId"))
	if err != nil {
		log.Error("failed to decode rental id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid rental id"))
		return
	}

	contract, err := h.service.ReadByRental(r.Context(), rentalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("contract not found", slog.Int("rental_id", rentalID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("smart contract not found"))
			return
		}
		log.Error("failed to read smart contract", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read smart contract"))
		return
	}

	render.JSON(w, r, contract)
}
