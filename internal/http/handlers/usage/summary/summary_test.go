package summary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/home-inventory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/home-inventory/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Summary(ctx context.Context, userID string) (*models.UsageSummary, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).(*models.UsageSummary)
	return s, args.Error(1)
}

func TestSummaryHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "сводка по бесплатному тарифу",
			setupMock: func(m *MockService) {
				m.On("Summary", mock.Anything, "u1").Return(&models.UsageSummary{
					Usage: models.Usage{Houses: 1},
					Plan:  &models.Plan{Name: models.PlanFree, MaxHouses: 1},
					Headroom: []models.Headroom{
						{Dimension: models.DimensionHouses, Limit: 1, Used: 1, Remaining: 0},
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"dimension":"houses","limit":1,"used":1,"remaining":0}`,
		},
		{
			name: "нет бесплатного тарифа",
			setupMock: func(m *MockService) {
				m.On("Summary", mock.Anything, "u1").
					Return(nil, fmt.Errorf("usage.Summary: %w", errors.Join(models.ErrConfiguration, errors.New("free plan missing"))))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"internal error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil)
			req = req.WithContext(middlewarectx.WithPrincipal(req.Context(),
				models.Principal{UserID: "u1", Role: models.RoleUser}))
			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
