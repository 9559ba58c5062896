// Package start реализует HTTP-обработчик запуска пробного периода текущим пользователем.
//
// Пробный период выдается один раз за всю жизнь аккаунта. Повторный запрос
// возвращает 409 Conflict.
package start

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/home-inventory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/home-inventory/internal/http/response"
	"github.com/magabrotheeeer/home-inventory/internal/lib/sl"
	"github.com/magabrotheeeer/home-inventory/internal/services/trial"
)

// Handler запускает триал.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает запуск триала.
type Service interface {
	StartTrial(ctx context.Context, userID string) (*trial.Result, error)
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Начать пробный период
// @Description Выдает пробный период на настроенное число дней. Текущая подписка отменяется.
// @Tags Trial
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 409 {object} response.ErrorResponse "Пробный период уже использован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/v1/trial [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trial.start"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	p, ok := middlewarectx.PrincipalFrom(r.Context())
	if !ok {
		log.Error("user identification missing")
		response.RenderStatus(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	res, err := h.service.StartTrial(r.Context(), p.UserID)
	if err != nil {
		log.Error("failed to start trial", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("trial started", slog.String("user_id", p.UserID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription":  res.Subscription,
		"trial_ends_at": res.User.TrialEndsAt,
	}))
}
