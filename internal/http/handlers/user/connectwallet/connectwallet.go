// Package connectwallet реализует HTTP-обработчик подключения кошелька.
//
// Handler принимает адрес кошелька, возвращает существующего пользователя
// с этим адресом либо создает нового с синтетическими username и email.
package connectwallet

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/rentchain/rentchain/internal/http/response"
	"github.com/rentchain/rentchain/internal/lib/sl"
	"github.com/rentchain/rentchain/internal/models"
)

// Handler управляет HTTP-запросами на подключение кошелька.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики подключения кошелька.
type Service interface {
	ConnectWallet(ctx context.Context, walletAddress string) (*models.WalletResult, error)
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
// @Summary Подключить кошелек
// @Description Возвращает пользователя с указанным адресом кошелька. Для неизвестного адреса создает нового пользователя.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body models.DummyWallet true "Адрес кошелька"
// @Success 200 {object} models.WalletResult "Существующий пользователь"
// @Success 201 {object} models.WalletResult "Созданный пользователь"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или адрес"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/connect-wallet [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.connectwallet"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyWallet
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

	result, err := h.service.ConnectWallet(r.Context(), req.WalletAddress)
	if err != nil {
		log.Error("failed to connect wallet", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not connect wallet"))
		return
	}

	log.Info("wallet connected",
		slog.Int("user_id", result.User.ID), slog.Bool("is_new_user", result.IsNewUser))
	if result.IsNewUser {
		w.WriteHeader(http.StatusCreated)
	}
	render.JSON(w, r, result)
}
