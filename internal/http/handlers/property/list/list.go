// Package list реализует HTTP-обработчик получения списка объектов аренды
// с необязательными фильтрами по категории и владельцу.
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
	ListProperties(ctx context.Context, categoryID, ownerID *int) ([]*models.Property, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список объектов аренды
// @Description Возвращает объекты аренды. Фильтр categoryId имеет приоритет над ownerId.
// @Tags Properties
// @Produce  json
// @Param categoryId query int false "Фильтр по категории"
// @Param ownerId query int false "Фильтр по владельцу"
// @Success 200 {array} models.Property "Объекты аренды"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /properties [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.property.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	categoryID, err := queryInt(r, "categoryId")
	if err != nil {
		log.Error("invalid categoryId filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid categoryId"))
		return
	}
	ownerID, err := queryInt(r, "ownerId")
	if err != nil {
		log.Error("invalid ownerId filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid ownerId"))
		return
	}

	properties, err := h.service.ListProperties(r.Context(), categoryID, ownerID)
	if err != nil {
		log.Error("failed to list properties", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list properties"))
		return
	}

	render.JSON(w, r, properties)
}

// queryInt читает необязательный целочисленный query-параметр.
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
