package subscriptions

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/home-inventory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/home-inventory/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CancelSubscription(ctx context.Context, p models.Principal, id int64) (*models.Subscription, error) {
	args := m.Called(ctx, p, id)
	s, _ := args.Get(0).(*models.Subscription)
	return s, args.Error(1)
}

func (m *MockService) PurgeOldCanceled(ctx context.Context, p models.Principal, days int) (int, error) {
	args := m.Called(ctx, p, days)
	return args.Int(0), args.Error(1)
}

var adminPrincipal = models.Principal{UserID: "admin-1", Role: models.RoleAdmin}

func TestCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "отмена чужой подписки администратором",
			id:   "42",
			setupMock: func(m *MockService) {
				m.On("CancelSubscription", mock.Anything, adminPrincipal, int64(42)).
					Return(&models.Subscription{ID: 42, UserID: "u9", Status: models.StatusCanceled}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"user_id":"u9"`,
		},
		{
			name: "нет прав",
			id:   "42",
			setupMock: func(m *MockService) {
				m.On("CancelSubscription", mock.Anything, adminPrincipal, int64(42)).
					Return(nil, fmt.Errorf("admin.CancelSubscription: %w", models.ErrForbidden))
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `forbidden`,
		},
		{
			name:           "некорректный id",
			id:             "x",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid id`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/subscriptions/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithPrincipal(ctx, adminPrincipal))

			w := httptest.NewRecorder()
			New(logger, svc, 30).Cancel(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestPurge(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "срок из конфига",
			body: "",
			setupMock: func(m *MockService) {
				m.On("PurgeOldCanceled", mock.Anything, adminPrincipal, 30).Return(3, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"deleted_count":3`,
		},
		{
			name: "срок из запроса",
			body: `{"retention_days":7}`,
			setupMock: func(m *MockService) {
				m.On("PurgeOldCanceled", mock.Anything, adminPrincipal, 7).Return(0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"retention_days":7`,
		},
		{
			name:           "нулевой срок",
			body:           `{"retention_days":0}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field RetentionDays must be at least 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/maintenance/purge", strings.NewReader(tt.body))
			req = req.WithContext(middlewarectx.WithPrincipal(req.Context(), adminPrincipal))

			w := httptest.NewRecorder()
			New(logger, svc, 30).Purge(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
