package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/home-inventory/internal/models"
)

func TestStatusCodeAndMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", fmt.Errorf("op: %w", models.ErrNotFound), http.StatusNotFound, "not found"},
		{"validation", fmt.Errorf("op: %w: days must be positive", models.ErrValidation),
			http.StatusUnprocessableEntity, "validation error: days must be positive"},
		{"invalid plan", fmt.Errorf("op: %w: \"pro\"", models.ErrInvalidPlan), http.StatusUnprocessableEntity, "plan is not active"},
		{"conflict", models.ErrConflict, http.StatusConflict, "conflict"},
		{"trial used", fmt.Errorf("trial.StartTrial: %w", models.ErrTrialAlreadyUsed), http.StatusConflict, "trial already used"},
		{"forbidden", models.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"configuration", fmt.Errorf("op: %w: free plan", models.ErrConfiguration), http.StatusInternalServerError, "internal error"},
		{"storage", fmt.Errorf("op: %w: connection refused", models.ErrStorage), http.StatusInternalServerError, "internal error"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, StatusCode(tt.err))
			assert.Equal(t, tt.wantMsg, Message(tt.err))
		})
	}
}

func TestRenderError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RenderError(rec, req, fmt.Errorf("op: %w", models.ErrTrialAlreadyUsed))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"status":"Error","error":"trial already used"}`, rec.Body.String())
}

func TestValidationError(t *testing.T) {
	type request struct {
		Email string `validate:"required,email"`
		Days  int    `validate:"min=1"`
		Role  string `validate:"oneof=USER ADMIN"`
	}
	err := validator.New().Struct(request{Email: "nope", Days: 0, Role: "ROOT"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t,
		"field Email must be a valid email, field Days must be at least 1, field Role must be one of [USER ADMIN]",
		resp.Error)
}
