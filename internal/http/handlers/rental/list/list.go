// Package list реализует HTTP-обработчик получения списка сделок аренды.
// Требуется ровно один фильтр: renterId либо propertyId.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/rentchain/rentchain/internal/http/response"
	"github.com/rentchain/rentchain/internal/lib/sl"
	"github.com/rentchain/rentchain/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	List(ctx context.Context, renterID, propertyID *int) ([]*models.Rental, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список сделок аренды
// @Description Возвращает сделки по арендатору либо по объекту. Ровно один фильтр обязателен.
// @Tags Rentals
// @Produce  json
// @Param renterId query int false "Фильтр по арендатору"
// @Param propertyId query int false "Фильтр по объекту"
// @Success 200 {array} models.Rental "Сделки аренды"
// @Failure 400 {object} response.ErrorResponse "Фильтр не задан, заданы оба или значение некорректно"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /rentals [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	renterID, err := queryInt(r, "renterId")
	if err != nil {
		log.Error("invalid renterId filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid renterId"))
		return
	}
	propertyID, err := queryInt(r, "propertyId")
	if err != nil {
		log.Error("invalid propertyId filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid propertyId"))
		return
	}

	if (renterID == nil) == (propertyID == nil) {
		log.Error("exactly one of renterId or propertyId is required")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("exactly one of renterId or propertyId is required"))
		return
	}

	rentals, err := h.service.List(r.Context(), renterID, propertyID)
	if err != nil {
		log.Error("failed to list rentals", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list rentals"))
		return
	}

	render.JSON(w, r, rentals)
}

func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
