package usage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/home-inventory/internal/lib/clock"
	"github.com/magabrotheeeer/home-inventory/internal/models"
	"github.com/magabrotheeeer/home-inventory/internal/storage/sqlite"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

type fixture struct {
	svc   *Service
	store *sqlite.Storage
	clock *clock.Fixed
}

func setup(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	clk := clock.NewFixed(now)
	return &fixture{svc: New(newNoopLogger(), store, clk, nil, Config{}), store: store, clock: clk}
}

func (f *fixture) createUser(t *testing.T, email string) string {
	t.Helper()
	u := &models.User{Email: email, Name: "Test", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.store.CreateUser(context.Background(), u))
	return u.ID
}

// addHouse создает дом с комнатами, в каждой комнате items[i] предметов.
func (f *fixture) addHouse(t *testing.T, userID string, items ...int) (int64, []int64) {
	t.Helper()
	ctx := context.Background()
	h := &models.House{UserID: userID, Name: "house"}
	require.NoError(t, f.store.AddHouse(ctx, h))
	roomIDs := make([]int64, 0, len(items))
	for i, n := range items {
		r := &models.Room{HouseID: h.ID, Name: fmt.Sprintf("room %d", i)}
		require.NoError(t, f.store.AddRoom(ctx, r))
		for j := 0; j < n; j++ {
			require.NoError(t, f.store.AddItem(ctx, &models.Item{RoomID: r.ID, Name: fmt.Sprintf("item %d", j)}))
		}
		roomIDs = append(roomIDs, r.ID)
	}
	return h.ID, roomIDs
}

func (f *fixture) subscribe(t *testing.T, userID, plan string, status models.SubscriptionStatus, trialEnd *time.Time) {
	t.Helper()
	ctx := context.Background()
	p, err := f.store.GetPlanByName(ctx, plan)
	require.NoError(t, err)
	require.NoError(t, f.store.CreateSubscription(ctx, &models.Subscription{
		UserID: userID, PlanID: p.ID, Status: status, CurrentPeriodStart: now,
		CurrentPeriodEnd: now.AddDate(1, 0, 0), TrialEndsAt: trialEnd, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestCheckLimit(t *testing.T) {
	plan := &models.Plan{MaxHouses: 2, MaxRoomsPerHouse: 10, MaxItemsPerRoom: models.Unlimited}
	u := models.Usage{
		Houses:        2,
		RoomsPerHouse: map[int64]int{1: 9, 2: 10, 3: 0},
		ItemsPerRoom:  map[int64]int{7: 100000},
	}

	tests := []struct {
		name        string
		dim         models.Dimension
		target      Target
		delta       int
		wantAllowed bool
		wantCurrent int
		wantErr     error
	}{
		{name: "houses at limit", dim: models.DimensionHouses, delta: 1, wantAllowed: false, wantCurrent: 2},
		{name: "houses zero delta", dim: models.DimensionHouses, delta: 0, wantAllowed: true, wantCurrent: 2},
		{name: "room up to limit", dim: models.DimensionRoomsPerHouse, target: Target{HouseID: 1}, delta: 1,
			wantAllowed: true, wantCurrent: 9},
		{name: "room over limit", dim: models.DimensionRoomsPerHouse, target: Target{HouseID: 1}, delta: 2,
			wantAllowed: false, wantCurrent: 9},
		{name: "full house", dim: models.DimensionRoomsPerHouse, target: Target{HouseID: 2}, delta: 1,
			wantAllowed: false, wantCurrent: 10},
		{name: "empty house", dim: models.DimensionRoomsPerHouse, target: Target{HouseID: 3}, delta: 10,
			wantAllowed: true, wantCurrent: 0},
		{name: "house is required", dim: models.DimensionRoomsPerHouse, delta: 1, wantErr: models.ErrValidation},
		{name: "unknown house", dim: models.DimensionRoomsPerHouse, target: Target{HouseID: 42}, delta: 1,
			wantErr: models.ErrNotFound},
		{name: "room is required", dim: models.DimensionItemsPerRoom, target: Target{HouseID: 1}, delta: 1,
			wantErr: models.ErrValidation},
		{name: "unknown room", dim: models.DimensionItemsPerRoom, target: Target{RoomID: 8}, delta: 1,
			wantErr: models.ErrNotFound},
		{name: "unlimited items", dim: models.DimensionItemsPerRoom, target: Target{RoomID: 7}, delta: 1000000,
			wantAllowed: true, wantCurrent: 100000},
		{name: "negative delta", dim: models.DimensionHouses, delta: -1, wantErr: models.ErrValidation},
		{name: "unknown dimension", dim: models.Dimension("garages"), delta: 1, wantErr: models.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := CheckLimit(u, plan, tt.dim, tt.target, tt.delta)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, d.Allowed)
			assert.Equal(t, tt.wantCurrent, d.Current)
			assert.Equal(t, tt.delta, d.Requested)
			assert.Equal(t, tt.dim, d.Dimension)
		})
	}

	_, err := CheckLimit(u, nil, models.DimensionHouses, Target{}, 1)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestService_ComputeUsage(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	userID := f.createUser(t, "usage@example.com")
	other := f.createUser(t, "other@example.com")

	u, err := f.svc.ComputeUsage(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, u.Houses)
	assert.Empty(t, u.RoomsPerHouse)

	h1, rooms1 := f.addHouse(t, userID, 3, 0)
	h2, _ := f.addHouse(t, userID)
	f.addHouse(t, other, 5)

	u, err = f.svc.ComputeUsage(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, u.Houses)
	assert.Equal(t, 2, u.Rooms)
	assert.Equal(t, 3, u.Items)
	assert.Equal(t, map[int64]int{h1: 2, h2: 0}, u.RoomsPerHouse)
	assert.Equal(t, map[int64]int{rooms1[0]: 3, rooms1[1]: 0}, u.ItemsPerRoom)

	_, err = f.svc.ComputeUsage(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestService_EffectivePlan(t *testing.T) {
	trialEnd := now.AddDate(0, 0, 10)

	tests := []struct {
		name    string
		prepare func(t *testing.T, f *fixture, userID string)
		advance time.Duration
		want    string
	}{
		{
			name:    "no subscription",
			prepare: func(*testing.T, *fixture, string) {},
			want:    models.PlanFree,
		},
		{
			name: "active",
			prepare: func(t *testing.T, f *fixture, userID string) {
				f.subscribe(t, userID, models.PlanPro, models.StatusActive, nil)
			},
			want: models.PlanPro,
		},
		{
			name: "running trial",
			prepare: func(t *testing.T, f *fixture, userID string) {
				f.subscribe(t, userID, models.PlanTrial, models.StatusTrial, &trialEnd)
			},
			advance: 9 * 24 * time.Hour,
			want:    models.PlanTrial,
		},
		{
			name: "expired trial falls back to free",
			prepare: func(t *testing.T, f *fixture, userID string) {
				f.subscribe(t, userID, models.PlanTrial, models.StatusTrial, &trialEnd)
			},
			advance: 10 * 24 * time.Hour,
			want:    models.PlanFree,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			userID := f.createUser(t, "effective@example.com")
			tt.prepare(t, f, userID)
			f.clock.Advance(tt.advance)

			p, err := f.svc.EffectivePlan(context.Background(), userID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name)
		})
	}
}

func TestService_EffectivePlan_NoFreePlan(t *testing.T) {
	f := setup(t)
	f.svc.cfg.FreePlan = "missing"
	userID := f.createUser(t, "nofree@example.com")

	_, err := f.svc.EffectivePlan(context.Background(), userID)
	assert.ErrorIs(t, err, models.ErrConfiguration)
}

func TestService_Check(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	userID := f.createUser(t, "check@example.com")

	// free: 1 дом, 3 комнаты, 50 предметов
	houseID, rooms := f.addHouse(t, userID, 50, 0, 0)

	d, err := f.svc.Check(ctx, userID, models.DimensionHouses, Target{}, 1)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 1, d.Limit)

	d, err = f.svc.Check(ctx, userID, models.DimensionRoomsPerHouse, Target{HouseID: houseID}, 1)
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	d, err = f.svc.Check(ctx, userID, models.DimensionItemsPerRoom, Target{RoomID: rooms[1]}, 50)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	f.subscribe(t, userID, models.PlanPremium, models.StatusActive, nil)
	d, err = f.svc.Check(ctx, userID, models.DimensionHouses, Target{}, 100)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, models.Unlimited, d.Limit)

	_, err = f.svc.Check(ctx, userID, models.DimensionHouses, Target{}, -1)
	assert.ErrorIs(t, err, models.ErrValidation)

	// чужой дом и дом без id
	other := f.createUser(t, "neighbour@example.com")
	foreignHouse, _ := f.addHouse(t, other, 1)
	_, err = f.svc.Check(ctx, userID, models.DimensionRoomsPerHouse, Target{HouseID: foreignHouse}, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = f.svc.Check(ctx, userID, models.DimensionRoomsPerHouse, Target{}, 1)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestService_Summary(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	userID := f.createUser(t, "summary@example.com")
	f.addHouse(t, userID, 10, 20)
	f.subscribe(t, userID, models.PlanPro, models.StatusActive, nil)

	s, err := f.svc.Summary(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanPro, s.Plan.Name)
	assert.Equal(t, 30, s.Usage.Items)
	assert.Equal(t, []models.Headroom{
		{Dimension: models.DimensionHouses, Limit: 5, Used: 1, Remaining: 4},
		{Dimension: models.DimensionRoomsPerHouse, Limit: 25, Used: 2, Remaining: 23},
		{Dimension: models.DimensionItemsPerRoom, Limit: models.Unlimited, Used: 20, Remaining: models.Unlimited},
	}, s.Headroom)
}
