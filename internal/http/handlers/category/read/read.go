package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

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
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить категорию по слагу
// @Description Возвращает категорию по её слагу.
// @Tags Categories
// @Produce  json
// @Param slug path string true "Слаг категории"
// @Success 200 {object} models.Category "Категория"
// @Failure 404 {object} response.ErrorResponse "Категория не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /categories/{slug} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "slug")
	category, err := h.service.GetCategoryBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("category not found", slog.String("slug", slug))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("category not found"))
			return
		}
		log.Error("failed to read category", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read category"))
		return
	}

	render.JSON(w, r, category)
}
