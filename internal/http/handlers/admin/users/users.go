// Package users реализует административные HTTP-обработчики пользователей:
// список, создание, смену роли, назначение тарифа и выдачу триала.
package users

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
	"github.com/magabrotheeeer/home-inventory/internal/services/admin"
	"github.com/magabrotheeeer/home-inventory/internal/services/trial"
)

// Service описывает административные операции над пользователями.
type Service interface {
	ListUsers(ctx context.Context, p models.Principal, limit, offset int) ([]*models.User, error)
	CreateUser(ctx context.Context, p models.Principal, in admin.NewUser) (*models.User, error)
	SetRole(ctx context.Context, p models.Principal, userID string, role models.Role) (*models.User, error)
	AssignPlan(ctx context.Context, p models.Principal, userID string, planID int64) (*models.Subscription, error)
	GrantOrExtendTrial(ctx context.Context, p models.Principal, userID string, days int) (*trial.Result, error)
}

// RoleRequest новая роль пользователя.
type RoleRequest struct {
	Role models.Role `json:"role" validate:"required,oneof=USER ADMIN"`
}

// PlanRequest тариф для назначения.
type PlanRequest struct {
	PlanID int64 `json:"plan_id" validate:"required,min=1"`
}

// TrialRequest длительность триала в днях от текущего момента.
type TrialRequest struct {
	Days int `json:"days" validate:"required,min=1"`
}

// Handlers набор обработчиков пользователей.
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

// decode читает и валидирует тело запроса. При ошибке ответ уже записан.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.RenderStatus(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return false
	}
	return true
}

// List godoc
// @Summary Список пользователей
// @Tags Admin
// @Produce json
// @Param limit query int false "Размер страницы (по умолчанию 50, максимум 500)"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Router /api/v1/admin/users [get]
// @Security BearerAuth
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger("handlers.admin.users.List", r)

	limit, offset := 0, 0
	var err error
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			response.RenderStatus(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil {
			response.RenderStatus(w, r, http.StatusBadRequest, "invalid offset")
			return
		}
	}

	p, _ := middlewarectx.PrincipalFrom(r.Context())
	users, err := h.service.ListUsers(r.Context(), p, limit, offset)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"users": users,
	}))
}

// Create godoc
// @Summary Создать пользователя
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body admin.NewUser true "Новый пользователь"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/v1/admin/users [post]
// @Security BearerAuth
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger("handlers.admin.users.Create", r)

	var in admin.NewUser
	if !h.decode(w, r, log, &in) {
		return
	}

	p, _ := middlewarectx.PrincipalFrom(r.Context())
	u, err := h.service.CreateUser(r.Context(), p, in)
	if err != nil {
		log.Error("failed to create user", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": u,
	}))
}

// SetRole godoc
// @Summary Сменить роль пользователя
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param request body RoleRequest true "Роль"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/v1/admin/users/{id}/role [put]
// @Security BearerAuth
func (h *Handlers) SetRole(w http.ResponseWriter, r *http.Request) {
	log := h.logger("handlers.admin.users.SetRole", r)

	var req RoleRequest
	if !h.decode(w, r, log, &req) {
		return
	}

	p, _ := middlewarectx.PrincipalFrom(r.Context())
	u, err := h.service.SetRole(r.Context(), p, chi.URLParam(r, "id"), req.Role)
	if err != nil {
		log.Error("failed to set role", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": u,
	}))
}

// AssignPlan godoc
// @Summary Назначить тариф
// @Description Отменяет текущую подписку пользователя и создает ACTIVE подписку на тариф.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param request body PlanRequest true "Тариф"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь или тариф не найден"
// @Failure 422 {object} response.ErrorResponse "Тариф неактивен"
// @Router /api/v1/admin/users/{id}/plan [post]
// @Security BearerAuth
func (h *Handlers) AssignPlan(w http.ResponseWriter, r *http.Request) {
	log := h.logger("handlers.admin.users.AssignPlan", r)

	var req PlanRequest
	if !h.decode(w, r, log, &req) {
		return
	}

	p, _ := middlewarectx.PrincipalFrom(r.Context())
	sub, err := h.service.AssignPlan(r.Context(), p, chi.URLParam(r, "id"), req.PlanID)
	if err != nil {
		log.Error("failed to assign plan", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription": sub,
	}))
}

// GrantTrial godoc
// @Summary Выдать или продлить триал
// @Description Игнорирует признак использованного триала. Текущая TRIAL-подписка продлевается на месте.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param request body TrialRequest true "Дни"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/v1/admin/users/{id}/trial [post]
// @Security BearerAuth
func (h *Handlers) GrantTrial(w http.ResponseWriter, r *http.Request) {
	log := h.logger("handlers.admin.users.GrantTrial", r)

	var req TrialRequest
	if !h.decode(w, r, log, &req) {
		return
	}

	p, _ := middlewarectx.PrincipalFrom(r.Context())
	res, err := h.service.GrantOrExtendTrial(r.Context(), p, chi.URLParam(r, "id"), req.Days)
	if err != nil {
		log.Error("failed to grant trial", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription":  res.Subscription,
		"trial_ends_at": res.User.TrialEndsAt,
		"extended":      res.Extended,
	}))
}
