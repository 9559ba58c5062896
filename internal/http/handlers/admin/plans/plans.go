// Package plans реализует административные HTTP-обработчики каталога тарифов:
// список всех тарифов, включая неактивные, создание и частичное обновление.
package plans

import (
	"context"
	"encoding/json"
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

// Service описывает административные операции над тарифами.
type Service interface {
	ListPlans(ctx context.Context, p models.Principal) ([]*models.Plan, error)
	CreatePlan(ctx context.Context, p models.Principal, spec models.PlanSpec) (*models.Plan, error)
	UpdatePlan(ctx context.Context, p models.Principal, id int64, patch models.PlanPatch) (*models.Plan, error)
}

// Handlers набор обработчиков тарифов.
type Handlers struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handlers.
func New(log *slog.Logger, service Service) *Handlers {
	return &Handlers{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handlers) logger(op string, r *http.Request) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List godoc
// @Summary Все тарифы
// @Description Возвращает все тарифы, включая неактивные.
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Router /api/v1/admin/plans [get]
// @Security BearerAuth
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger("handlers.admin.plans.List", r)

	p, _ := middlewarectx.PrincipalFrom(r.Context())
	plans, err := h.service.ListPlans(r.Context(), p)
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans": plans,
	}))
}

// Create godoc
// @Summary Создать тариф
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body models.PlanSpec true "Новый тариф"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Failure 409 {object} response.ErrorResponse "Тариф с таким именем уже есть"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/v1/admin/plans [post]
// @Security BearerAuth
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger("handlers.admin.plans.Create", r)

	var spec models.PlanSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.RenderStatus(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(spec); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	p, _ := middlewarectx.PrincipalFrom(r.Context())
	plan, err := h.service.CreatePlan(r.Context(), p, spec)
	if err != nil {
		log.Error("failed to create plan", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("plan created", slog.String("name", plan.Name))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plan": plan,
	}))
}

// Update godoc
// @Summary Изменить тариф
// @Description Частичное обновление: незаданные поля не меняются. Имя тарифа не меняется.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "ID тарифа"
// @Param request body models.PlanPatch true "Изменения"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Failure 404 {object} response.ErrorResponse "Тариф не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/v1/admin/plans/{id} [put]
// @Security BearerAuth
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger("handlers.admin.plans.Update", r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		response.RenderStatus(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var patch models.PlanPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.RenderStatus(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(patch); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	p, _ := middlewarectx.PrincipalFrom(r.Context())
	plan, err := h.service.UpdatePlan(r.Context(), p, id, patch)
	if err != nil {
		log.Error("failed to update plan", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("plan updated", slog.Int64("plan_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plan": plan,
	}))
}
