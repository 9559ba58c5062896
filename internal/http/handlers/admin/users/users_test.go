package users

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/home-inventory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/home-inventory/internal/models"
	"github.com/magabrotheeeer/home-inventory/internal/services/admin"
	"github.com/magabrotheeeer/home-inventory/internal/services/trial"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListUsers(ctx context.Context, p models.Principal, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, p, limit, offset)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *MockService) CreateUser(ctx context.Context, p models.Principal, in admin.NewUser) (*models.User, error) {
	args := m.Called(ctx, p, in)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockService) SetRole(ctx context.Context, p models.Principal, userID string, role models.Role) (*models.User, error) {
	args := m.Called(ctx, p, userID, role)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *MockService) AssignPlan(ctx context.Context, p models.Principal, userID string, planID int64) (*models.Subscription, error) {
	args := m.Called(ctx, p, userID, planID)
	s, _ := args.Get(0).(*models.Subscription)
	return s, args.Error(1)
}

func (m *MockService) GrantOrExtendTrial(ctx context.Context, p models.Principal, userID string, days int) (*trial.Result, error) {
	args := m.Called(ctx, p, userID, days)
	res, _ := args.Get(0).(*trial.Result)
	return res, args.Error(1)
}

var adminPrincipal = models.Principal{UserID: "admin-1", Role: models.RoleAdmin}

func newRequest(method, url, body, userID string) *http.Request {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	rctx := chi.NewRouteContext()
	if userID != "" {
		rctx.URLParams.Add("id", userID)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(middlewarectx.WithPrincipal(ctx, adminPrincipal))
}

func TestHandlers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ends := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		call           func(h *Handlers, w http.ResponseWriter)
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "список с пагинацией",
			call: func(h *Handlers, w http.ResponseWriter) {
				h.List(w, newRequest(http.MethodGet, "/api/v1/admin/users?limit=10&offset=20", "", ""))
			},
			setupMock: func(m *MockService) {
				m.On("ListUsers", mock.Anything, adminPrincipal, 10, 20).
					Return([]*models.User{{ID: "u1", Email: "a@b.c", Role: models.RoleUser}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"email":"a@b.c"`,
		},
		{
			name: "некорректный limit",
			call: func(h *Handlers, w http.ResponseWriter) {
				h.List(w, newRequest(http.MethodGet, "/api/v1/admin/users?limit=ten", "", ""))
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid limit`,
		},
		{
			name: "создание пользователя",
			call: func(h *Handlers, w http.ResponseWriter) {
				h.Create(w, newRequest(http.MethodPost, "/api/v1/admin/users",
					`{"email":"new@home.io","name":"New","password":"Secret123!"}`, ""))
			},
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, adminPrincipal, admin.NewUser{
					Email: "new@home.io", Name: "New", Password: "Secret123!",
				}).Return(&models.User{ID: "u2", Email: "new@home.io", Role: models.RoleUser}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":"u2"`,
		},
		{
			name: "email занят",
			call: func(h *Handlers, w http.ResponseWriter) {
				h.Create(w, newRequest(http.MethodPost, "/api/v1/admin/users",
					`{"email":"dup@home.io","password":"Secret123!"}`, ""))
			},
			setupMock: func(m *MockService) {
				m.On("CreateUser", mock.Anything, adminPrincipal, mock.Anything).
					Return(nil, fmt.Errorf("admin.CreateUser: %w", models.ErrConflict))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `conflict`,
		},
		{
			name: "некорректный email",
			call: func(h *Handlers, w http.ResponseWriter) {
				h.Create(w, newRequest(http.MethodPost, "/api/v1/admin/users", `{"email":"nope","password":"x"}`, ""))
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Email must be a valid email`,
		},
		{
			name: "смена роли",
			call: func(h *Handlers, w http.ResponseWriter) {
				h.SetRole(w, newRequest(http.MethodPut, "/api/v1/admin/users/u1/role", `{"role":"ADMIN"}`, "u1"))
			},
			setupMock: func(m *MockService) {
				m.On("SetRole", mock.Anything, adminPrincipal, "u1", models.RoleAdmin).
					Return(&models.User{ID: "u1", Role: models.RoleAdmin}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"role":"ADMIN"`,
		},
		{
			name: "неизвестная роль",
			call: func(h *Handlers, w http.ResponseWriter) {
				h.SetRole(w, newRequest(http.MethodPut, "/api/v1/admin/users/u1/role", `{"role":"ROOT"}`, "u1"))
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Role must be one of [USER ADMIN]`,
		},
		{
			name: "назначение неактивного тарифа",
			call: func(h *Handlers, w http.ResponseWriter) {
				h.AssignPlan(w, newRequest(http.MethodPost, "/api/v1/admin/users/u1/plan", `{"plan_id":3}`, "u1"))
			},
			setupMock: func(m *MockService) {
				m.On("AssignPlan", mock.Anything, adminPrincipal, "u1", int64(3)).
					Return(nil, fmt.Errorf("lifecycle.AssignPlan: %w: \"legacy\"", models.ErrInvalidPlan))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `plan is not active`,
		},
		{
			name: "назначение тарифа",
			call: func(h *Handlers, w http.ResponseWriter) {
				h.AssignPlan(w, newRequest(http.MethodPost, "/api/v1/admin/users/u1/plan", `{"plan_id":4}`, "u1"))
			},
			setupMock: func(m *MockService) {
				m.On("AssignPlan", mock.Anything, adminPrincipal, "u1", int64(4)).
					Return(&models.Subscription{ID: 11, PlanID: 4, Status: models.StatusActive}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ACTIVE"`,
		},
		{
			name: "продление триала",
			call: func(h *Handlers, w http.ResponseWriter) {
				h.GrantTrial(w, newRequest(http.MethodPost, "/api/v1/admin/users/u1/trial", `{"days":10}`, "u1"))
			},
			setupMock: func(m *MockService) {
				m.On("GrantOrExtendTrial", mock.Anything, adminPrincipal, "u1", 10).Return(&trial.Result{
					User:         &models.User{ID: "u1", TrialEndsAt: &ends},
					Subscription: &models.Subscription{ID: 5, Status: models.StatusTrial},
					Extended:     true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"extended":true`,
		},
		{
			name: "триал на ноль дней",
			call: func(h *Handlers, w http.ResponseWriter) {
				h.GrantTrial(w, newRequest(http.MethodPost, "/api/v1/admin/users/u1/trial", `{"days":0}`, "u1"))
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Days is a required field`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			tt.call(New(logger, svc), w)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
