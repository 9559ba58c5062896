package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/home-inventory/internal/lib/clock"
	"github.com/magabrotheeeer/home-inventory/internal/lib/metrics"
	"github.com/magabrotheeeer/home-inventory/internal/models"
	"github.com/magabrotheeeer/home-inventory/internal/services/trial"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestStorage_Users(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	u := &models.User{Email: "owner@example.com", Name: "Owner", PasswordHash: "hash",
		CreatedAt: baseTime, UpdatedAt: baseTime}
	require.NoError(t, storage.CreateUser(ctx, u))
	require.NotEmpty(t, u.ID)
	assert.Equal(t, models.RoleUser, u.Role)

	t.Run("get by id and email", func(t *testing.T) {
		got, err := storage.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, got.Email)
		assert.Nil(t, got.TrialStartedAt)

		got, err = storage.GetUserByEmail(ctx, "owner@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := storage.CreateUser(ctx, &models.User{Email: "owner@example.com",
			CreatedAt: baseTime, UpdatedAt: baseTime})
		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := storage.GetUser(ctx, "550e8400-e29b-41d4-a716-446655440000")
		assert.ErrorIs(t, err, models.ErrNotFound)
		_, err = storage.GetUser(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("trial fields", func(t *testing.T) {
		ends := baseTime.AddDate(0, 0, 10)
		u.TrialStartedAt = &baseTime
		u.TrialEndsAt = &ends
		u.HasUsedTrial = true
		u.UpdatedAt = baseTime
		require.NoError(t, storage.UpdateUserTrial(ctx, u))

		got, err := storage.GetUser(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got.TrialEndsAt)
		assert.True(t, got.TrialEndsAt.Equal(ends))
		assert.True(t, got.HasUsedTrial)
	})

	t.Run("role and upgrade flag", func(t *testing.T) {
		require.NoError(t, storage.SetUserRole(ctx, u.ID, models.RoleAdmin, baseTime))
		require.NoError(t, storage.SetRequiresUpgrade(ctx, u.ID, true, baseTime))
		got, err := storage.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, got.Role)
		assert.True(t, got.RequiresUpgrade)

		err = storage.SetUserRole(ctx, "550e8400-e29b-41d4-a716-446655440000", models.RoleAdmin, baseTime)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		users, err := storage.ListUsers(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestStorage_ListUsersWithExpiredTrial(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	expiredAt := baseTime.AddDate(0, 0, -1)
	create := func(email string, requiresUpgrade bool) *models.User {
		u := &models.User{Email: email, TrialStartedAt: &baseTime, TrialEndsAt: &expiredAt,
			HasUsedTrial: true, RequiresUpgrade: requiresUpgrade, CreatedAt: baseTime, UpdatedAt: baseTime}
		require.NoError(t, storage.CreateUser(ctx, u))
		return u
	}

	expired := create("expired@example.com", false)
	create("flagged@example.com", true)
	paid := create("paid@example.com", false)
	factory.CreateSubscription(t, paid.ID, factory.PlanID(t, models.PlanPro), models.StatusActive, baseTime)

	users, err := storage.ListUsersWithExpiredTrial(ctx, baseTime)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, expired.ID, users[0].ID)
}

func TestStorage_Plans(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("seeded catalog", func(t *testing.T) {
		plans, err := storage.ListPlans(ctx, true)
		require.NoError(t, err)
		names := make([]string, 0, len(plans))
		for _, p := range plans {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"free", "trial", "basic", "pro", "premium"}, names)

		premium, err := storage.GetPlanByName(ctx, models.PlanPremium)
		require.NoError(t, err)
		assert.Equal(t, models.Unlimited, premium.MaxHouses)
	})

	t.Run("create, update and filter inactive", func(t *testing.T) {
		p := &models.Plan{Name: "family", DisplayName: "Family", Currency: "USD", Price: 1500,
			MaxHouses: 3, MaxRoomsPerHouse: 20, MaxItemsPerRoom: 100, IsActive: true,
			SortOrder: 10, CreatedAt: baseTime, UpdatedAt: baseTime}
		require.NoError(t, storage.CreatePlan(ctx, p))
		require.NotZero(t, p.ID)

		p.IsActive = false
		p.DisplayName = "Family (legacy)"
		require.NoError(t, storage.UpdatePlan(ctx, p))

		got, err := storage.GetPlanByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Family (legacy)", got.DisplayName)
		assert.False(t, got.IsActive)

		active, err := storage.ListPlans(ctx, true)
		require.NoError(t, err)
		all, err := storage.ListPlans(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, len(active)+1)
	})

	t.Run("duplicate name", func(t *testing.T) {
		err := storage.CreatePlan(ctx, &models.Plan{Name: "free", DisplayName: "Free",
			Currency: "USD", CreatedAt: baseTime, UpdatedAt: baseTime})
		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("unknown plan", func(t *testing.T) {
		_, err := storage.GetPlanByID(ctx, 9999)
		assert.ErrorIs(t, err, models.ErrNotFound)
		err = storage.UpdatePlan(ctx, &models.Plan{ID: 9999, UpdatedAt: baseTime})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestStorage_Subscriptions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	verification := NewTestVerification(storage)

	userID := factory.CreateUser(t, "subs@example.com")
	proID := factory.PlanID(t, models.PlanPro)
	trialID := factory.PlanID(t, models.PlanTrial)

	trialEnds := baseTime.AddDate(0, 0, 10)
	trial := &models.Subscription{UserID: userID, PlanID: trialID, Status: models.StatusTrial,
		CurrentPeriodStart: baseTime, CurrentPeriodEnd: trialEnds, TrialEndsAt: &trialEnds,
		CreatedAt: baseTime, UpdatedAt: baseTime}
	require.NoError(t, storage.CreateSubscription(ctx, trial))

	t.Run("second open subscription violates index", func(t *testing.T) {
		err := storage.CreateSubscription(ctx, &models.Subscription{UserID: userID, PlanID: proID,
			Status: models.StatusActive, CurrentPeriodStart: baseTime,
			CurrentPeriodEnd: baseTime.AddDate(1, 0, 0), CreatedAt: baseTime, UpdatedAt: baseTime})
		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("open subscription carries plan", func(t *testing.T) {
		got, err := storage.GetOpenSubscription(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, trial.ID, got.ID)
		require.NotNil(t, got.Plan)
		assert.Equal(t, models.PlanTrial, got.Plan.Name)
		require.NotNil(t, got.TrialEndsAt)
		assert.True(t, got.TrialEndsAt.Equal(trialEnds))
	})

	t.Run("cancel then create in one transaction", func(t *testing.T) {
		later := baseTime.Add(time.Hour)
		err := storage.RunInTx(ctx, func(ctx context.Context) error {
			n, err := storage.CancelOpenSubscriptions(ctx, userID, later)
			if err != nil {
				return err
			}
			assert.Equal(t, 1, n)
			return storage.CreateSubscription(ctx, &models.Subscription{UserID: userID, PlanID: proID,
				Status: models.StatusActive, CurrentPeriodStart: later,
				CurrentPeriodEnd: later.AddDate(1, 0, 0), CreatedAt: later, UpdatedAt: later})
		})
		require.NoError(t, err)
		assert.Equal(t, 1, verification.CountOpenSubscriptions(t, userID))

		got, err := storage.GetSubscription(ctx, trial.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCanceled, got.Status)
		assert.True(t, got.CancelAtPeriodEnd)
	})

	t.Run("failed transaction rolls back", func(t *testing.T) {
		boom := errors.New("boom")
		err := storage.RunInTx(ctx, func(ctx context.Context) error {
			if _, err := storage.CancelOpenSubscriptions(ctx, userID, baseTime); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, verification.CountOpenSubscriptions(t, userID))
	})

	t.Run("history newest first", func(t *testing.T) {
		subs, err := storage.ListSubscriptions(ctx, userID)
		require.NoError(t, err)
		require.Len(t, subs, 2)
		assert.Equal(t, models.StatusActive, subs[0].Status)
		assert.Equal(t, models.StatusCanceled, subs[1].Status)
	})

	t.Run("unknown subscription", func(t *testing.T) {
		_, err := storage.GetSubscription(ctx, 9999)
		assert.ErrorIs(t, err, models.ErrNotFound)
		_, err = storage.GetOpenSubscription(ctx, factory.CreateUser(t, "none@example.com"))
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestStorage_DeleteCanceledBefore(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	verification := NewTestVerification(storage)

	userID := factory.CreateUser(t, "purge@example.com")
	planID := factory.PlanID(t, models.PlanBasic)
	old := factory.CreateSubscription(t, userID, planID, models.StatusCanceled, baseTime.AddDate(0, 0, -31))
	recent := factory.CreateSubscription(t, userID, planID, models.StatusCanceled, baseTime.AddDate(0, 0, -29))
	factory.CreateSubscription(t, userID, planID, models.StatusActive, baseTime.AddDate(0, 0, -60))

	n, err := storage.DeleteCanceledBefore(ctx, baseTime.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	verification.VerifySubscriptionDeleted(t, old)

	_, err = storage.GetSubscription(ctx, recent)
	assert.NoError(t, err)
}

func TestStorage_InventoryTree(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	userID := factory.CreateUser(t, "tree@example.com")
	first := factory.CreateHouse(t, userID, 3, 0)
	second := factory.CreateHouse(t, userID)
	factory.CreateHouse(t, factory.CreateUser(t, "other@example.com"), 5)

	tree, err := storage.InventoryTree(ctx, userID)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, first, tree[0].ID)
	require.Len(t, tree[0].Rooms, 2)
	assert.Equal(t, 3, tree[0].Rooms[0].ItemCount)
	assert.Equal(t, 0, tree[0].Rooms[1].ItemCount)

	assert.Equal(t, second, tree[1].ID)
	assert.Empty(t, tree[1].Rooms)
}

func TestCheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	assert.NoError(t, CheckDatabaseReady(storage))
}

func TestStorage_GetUserForUpdate_Blocks(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	userID := NewTestDataFactory(storage).CreateUser(t, "locked@example.com")

	done := make(chan error, 1)
	err := storage.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := storage.GetUserForUpdate(ctx, userID); err != nil {
			return err
		}
		go func() {
			done <- storage.RunInTx(context.Background(), func(ctx context.Context) error {
				_, err := storage.GetUserForUpdate(ctx, userID)
				return err
			})
		}()

		select {
		case err := <-done:
			t.Errorf("second transaction was not blocked, err: %v", err)
		case <-time.After(300 * time.Millisecond):
		}
		return nil
	})
	require.NoError(t, err)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("second transaction still blocked after commit")
	}

	_, err = storage.GetUserForUpdate(ctx, "not-a-uuid")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestStartTrial_Concurrent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := trial.New(logger, storage, clock.NewFixed(baseTime), nil,
		metrics.New(prometheus.NewRegistry()), trial.Config{TrialDays: 14})
	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)

	const attempts = 4
	for i := range 5 {
		userID := factory.CreateUser(t, fmt.Sprintf("racer%d@example.com", i))

		start := make(chan struct{})
		errs := make([]error, attempts)
		var wg sync.WaitGroup
		for n := range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_, errs[n] = svc.StartTrial(context.Background(), userID)
			}()
		}
		close(start)
		wg.Wait()

		var ok, used int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, models.ErrTrialAlreadyUsed):
				used++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, ok, "exactly one StartTrial must win")
		assert.Equal(t, attempts-1, used)
		assert.Equal(t, 1, verify.CountOpenSubscriptions(t, userID))
	}
}
