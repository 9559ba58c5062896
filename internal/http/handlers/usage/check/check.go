// Package check реализует HTTP-обработчик проверки лимита перед созданием дома,
// комнаты или вещи.
//
// Отказ по лимиту не является ошибкой: ответ 200 с allowed=false.
package check

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/home-inventory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/home-inventory/internal/http/response"
	"github.com/magabrotheeeer/home-inventory/internal/lib/sl"
	"github.com/magabrotheeeer/home-inventory/internal/models"
	"github.com/magabrotheeeer/home-inventory/internal/services/usage"
)

// Request входные данные проверки лимита.
type Request struct {
	Dimension models.Dimension `json:"dimension" validate:"required,oneof=houses roomsPerHouse itemsPerRoom"`
	HouseID   int64            `json:"house_id"`
	RoomID    int64            `json:"room_id"`
	Delta     *int             `json:"delta" validate:"omitempty,min=0"`
}

// Handler проверяет лимит.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает проверку лимита.
type Service interface {
	Check(ctx context.Context, userID string, d models.Dimension, target usage.Target, delta int) (*models.LimitDecision, error)
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Проверить лимит
// @Description Сравнивает текущее использование плюс delta (по умолчанию 1) с лимитом действующего тарифа.
// @Tags Usage
// @Accept json
// @Produce json
// @Param request body Request true "Измерение и родитель"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/v1/usage/check [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.usage.check"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
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

	delta := 1
	if req.Delta != nil {
		delta = *req.Delta
	}

	dec, err := h.service.Check(r.Context(), p.UserID, req.Dimension,
		usage.Target{HouseID: req.HouseID, RoomID: req.RoomID}, delta)
	if err != nil {
		log.Error("failed to check limit", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(dec))
}
