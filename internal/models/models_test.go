package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_Trial(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)

	tests := []struct {
		name      string
		user      User
		now       time.Time
		onTrial   bool
		expired   bool
		remaining int
	}{
		{
			name: "no trial",
			user: User{},
			now:  start,
		},
		{
			name:      "first day",
			user:      User{TrialStartedAt: &start, TrialEndsAt: &end},
			now:       start,
			onTrial:   true,
			remaining: 10,
		},
		{
			name:      "partial day rounds up",
			user:      User{TrialStartedAt: &start, TrialEndsAt: &end},
			now:       end.Add(-time.Hour),
			onTrial:   true,
			remaining: 1,
		},
		{
			name:    "ends exactly now",
			user:    User{TrialStartedAt: &start, TrialEndsAt: &end},
			now:     end,
			expired: true,
		},
		{
			name:    "long expired",
			user:    User{TrialStartedAt: &start, TrialEndsAt: &end},
			now:     end.AddDate(1, 0, 0),
			expired: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.onTrial, tt.user.IsOnTrial(tt.now))
			assert.Equal(t, tt.expired, tt.user.TrialExpired(tt.now))
			assert.Equal(t, tt.remaining, tt.user.TrialDaysRemaining(tt.now))
		})
	}
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())

	assert.True(t, Principal{UserID: "a", Role: RoleAdmin}.IsAdmin())
	assert.False(t, Principal{UserID: "a", Role: RoleUser}.IsAdmin())
}

func TestPlan_Limit(t *testing.T) {
	p := &Plan{MaxHouses: 2, MaxRoomsPerHouse: Unlimited, MaxItemsPerRoom: 50}

	tests := []struct {
		dim   Dimension
		limit int
		ok    bool
	}{
		{DimensionHouses, 2, true},
		{DimensionRoomsPerHouse, Unlimited, true},
		{DimensionItemsPerRoom, 50, true},
		{Dimension("garages"), 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.dim), func(t *testing.T) {
			limit, ok := p.Limit(tt.dim)
			assert.Equal(t, tt.limit, limit)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestPlanPatch_Apply(t *testing.T) {
	p := &Plan{Name: "basic", DisplayName: "Basic", Price: 499, MaxHouses: 2, IsActive: true}

	name := "Basic+"
	houses := 3
	inactive := false
	PlanPatch{DisplayName: &name, MaxHouses: &houses, IsActive: &inactive}.Apply(p)

	assert.Equal(t, "basic", p.Name)
	assert.Equal(t, "Basic+", p.DisplayName)
	assert.Equal(t, int64(499), p.Price)
	assert.Equal(t, 3, p.MaxHouses)
	assert.False(t, p.IsActive)

	before := *p
	PlanPatch{}.Apply(p)
	assert.Equal(t, before, *p)
}

func TestSubscriptionStatus_IsOpen(t *testing.T) {
	assert.True(t, StatusActive.IsOpen())
	assert.True(t, StatusTrial.IsOpen())
	assert.False(t, StatusCanceled.IsOpen())
}

func TestIsDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"not found", fmt.Errorf("op: %w", ErrNotFound), true},
		{"trial used", fmt.Errorf("a: %w", fmt.Errorf("b: %w", ErrTrialAlreadyUsed)), true},
		{"forbidden", ErrForbidden, true},
		{"storage", fmt.Errorf("op: %w", ErrStorage), false},
		{"plain", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDomainError(tt.err))
		})
	}
}
