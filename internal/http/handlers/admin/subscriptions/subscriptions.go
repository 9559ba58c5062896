// Package subscriptions реализует административные HTTP-обработчики подписок:
// принудительную отмену любой подписки и ручной запуск чистки старых отмененных подписок.
package subscriptions

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/home-inventory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/home-inventory/internal/http/response"
	"github.com/magabrotheeeer/home-inventory/internal/lib/sl"
	"github.com/magabrotheeeer/home-inventory/internal/models"
)

// Service описывает административные операции над подписками.
type Service interface {
	CancelSubscription(ctx context.Context, p models.Principal, subscriptionID int64) (*models.Subscription, error)
	PurgeOldCanceled(ctx context.Context, p models.Principal, retentionDays int) (int, error)
}

// PurgeRequest параметры чистки. Пустое тело использует срок хранения из конфига.
type PurgeRequest struct {
	RetentionDays *int `json:"retention_days" validate:"omitempty,min=1"`
}

// Handlers набор обработчиков подписок.
type Handlers struct {
	log           *slog.Logger
	service       Service
	validate      *validator.Validate
	retentionDays int
}

// New создает Handlers. retentionDays используется, когда в запросе срок не указан.
func New(log *slog.Logger, service Service, retentionDays int) *Handlers {
	return &Handlers{
		log:           log,
		service:       service,
		validate:      validator.New(),
		retentionDays: retentionDays,
	}
}

// Cancel godoc
// @Summary Отменить любую подписку
// @Tags Admin
// @Produce json
// @Param id path int true "ID подписки"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Router /api/v1/admin/subscriptions/{id} [delete]
// @Security BearerAuth
func (h *Handlers) Cancel(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.subscriptions.Cancel"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		response.RenderStatus(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	p, _ := middlewarectx.PrincipalFrom(r.Context())
	sub, err := h.service.CancelSubscription(r.Context(), p, id)
	if err != nil {
		log.Error("failed to cancel subscription", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription": sub,
	}))
}

// Purge godoc
// @Summary Удалить старые отмененные подписки
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body PurgeRequest false "Срок хранения в днях"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/v1/admin/maintenance/purge [post]
// @Security BearerAuth
func (h *Handlers) Purge(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.subscriptions.Purge"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req PurgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request", sl.Err(err))
		response.RenderStatus(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	days := h.retentionDays
	if req.RetentionDays != nil {
		days = *req.RetentionDays
	}

	p, _ := middlewarectx.PrincipalFrom(r.Context())
	n, err := h.service.PurgeOldCanceled(r.Context(), p, days)
	if err != nil {
		log.Error("failed to purge subscriptions", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("canceled subscriptions purged", slog.Int("deleted", n), slog.Int("retention_days", days))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"deleted_count":  n,
		"retention_days": days,
	}))
}
