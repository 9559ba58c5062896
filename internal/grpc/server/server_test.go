package server_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	entitlementspb "github.com/magabrotheeeer/home-inventory/internal/grpc/gen"
	"github.com/magabrotheeeer/home-inventory/internal/grpc/client"
	"github.com/magabrotheeeer/home-inventory/internal/grpc/server"
	"github.com/magabrotheeeer/home-inventory/internal/models"
	"github.com/magabrotheeeer/home-inventory/internal/services/usage"
)

type MockSubscriptions struct {
	mock.Mock
}

func (m *MockSubscriptions) GetCurrentSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	sub, _ := args.Get(0).(*models.Subscription)
	return sub, args.Error(1)
}

type MockUsage struct {
	mock.Mock
}

func (m *MockUsage) ComputeUsage(ctx context.Context, userID string) (*models.Usage, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*models.Usage)
	return u, args.Error(1)
}

func (m *MockUsage) Check(ctx context.Context, userID string, d models.Dimension, target usage.Target, delta int) (*models.LimitDecision, error) {
	args := m.Called(ctx, userID, d, target, delta)
	dec, _ := args.Get(0).(*models.LimitDecision)
	return dec, args.Error(1)
}

// listen поднимает сервер на bufconn.
func listen(t *testing.T, subs server.Subscriptions, u server.Usage) *bufconn.Listener {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(server.LoggingInterceptor(logger)))
	entitlementspb.RegisterEntitlementsServer(srv, server.New(logger, subs, u))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return lis
}

func dialer(lis *bufconn.Listener) grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
}

// startServer поднимает сервер и возвращает подключенный клиент.
func startServer(t *testing.T, subs server.Subscriptions, u server.Usage) *client.Client {
	t.Helper()
	c, err := client.New("passthrough:///bufnet", dialer(listen(t, subs, u)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// rawClient сгенерированная заглушка без обертки client.
func rawClient(t *testing.T, lis *bufconn.Listener) entitlementspb.EntitlementsClient {
	t.Helper()
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithTransportCredentials(insecure.NewCredentials()), dialer(lis))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return entitlementspb.NewEntitlementsClient(conn)
}

func TestGetCurrentSubscription(t *testing.T) {
	subs := new(MockSubscriptions)
	end := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	trialEnd := end.AddDate(0, 0, -20)
	subs.On("GetCurrentSubscription", mock.Anything, "u1").
		Return(&models.Subscription{
			ID:               3,
			UserID:           "u1",
			PlanID:           2,
			Plan:             &models.Plan{ID: 2, Name: "basic", MaxHouses: 2, MaxRoomsPerHouse: models.Unlimited},
			Status:           models.StatusTrial,
			CurrentPeriodEnd: end,
			TrialEndsAt:      &trialEnd,
		}, nil)
	subs.On("GetCurrentSubscription", mock.Anything, "u2").Return(nil, nil)
	subs.On("GetCurrentSubscription", mock.Anything, "ghost").
		Return(nil, fmt.Errorf("lifecycle.GetCurrentSubscription: %w", models.ErrNotFound))

	c := startServer(t, subs, new(MockUsage))
	ctx := context.Background()

	sub, err := c.CurrentSubscription(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), sub.ID)
	assert.Equal(t, models.StatusTrial, sub.Status)
	assert.True(t, end.Equal(sub.CurrentPeriodEnd))
	require.NotNil(t, sub.TrialEndsAt)
	assert.True(t, trialEnd.Equal(*sub.TrialEndsAt))
	require.NotNil(t, sub.Plan)
	assert.Equal(t, "basic", sub.Plan.Name)
	assert.Equal(t, models.Unlimited, sub.Plan.MaxRoomsPerHouse)

	sub, err = c.CurrentSubscription(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, sub)

	_, err = c.CurrentSubscription(ctx, "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = c.CurrentSubscription(ctx, "")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestComputeUsage(t *testing.T) {
	u := new(MockUsage)
	u.On("ComputeUsage", mock.Anything, "u1").Return(&models.Usage{
		Houses:        2,
		Rooms:         3,
		Items:         10,
		RoomsPerHouse: map[int64]int{1: 2, 2: 1},
		ItemsPerRoom:  map[int64]int{7: 10},
	}, nil)
	u.On("ComputeUsage", mock.Anything, "down").
		Return(nil, fmt.Errorf("usage.ComputeUsage: %w", errors.Join(models.ErrStorage, errors.New("conn reset"))))

	c := startServer(t, new(MockSubscriptions), u)

	got, err := c.Usage(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Houses)
	assert.Equal(t, 2, got.RoomsPerHouse[1])
	assert.Equal(t, 10, got.ItemsPerRoom[7])

	_, err = c.Usage(context.Background(), "down")
	assert.ErrorIs(t, err, models.ErrStorage)
}

func TestCheckLimit(t *testing.T) {
	u := new(MockUsage)
	u.On("Check", mock.Anything, "u1", models.DimensionItemsPerRoom, usage.Target{RoomID: 7}, 1).
		Return(&models.LimitDecision{Allowed: false, Dimension: models.DimensionItemsPerRoom, Limit: 10, Current: 10, Requested: 1}, nil)
	u.On("Check", mock.Anything, "u1", models.Dimension("garages"), usage.Target{}, 1).
		Return(nil, fmt.Errorf("usage.Check: %w: unknown dimension", models.ErrValidation))

	c := startServer(t, new(MockSubscriptions), u)
	ctx := context.Background()

	dec, err := c.CheckLimit(ctx, "u1", models.DimensionItemsPerRoom, usage.Target{RoomID: 7}, 1)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Equal(t, 10, dec.Limit)
	assert.Equal(t, 1, dec.Requested)

	_, err = c.CheckLimit(ctx, "u1", "garages", usage.Target{}, 1)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCheckLimit_Delta(t *testing.T) {
	u := new(MockUsage)
	u.On("Check", mock.Anything, "u1", models.DimensionHouses, usage.Target{}, 1).
		Return(&models.LimitDecision{Allowed: true, Dimension: models.DimensionHouses, Limit: 2, Current: 1, Requested: 1}, nil).Once()
	u.On("Check", mock.Anything, "u1", models.DimensionHouses, usage.Target{}, 0).
		Return(&models.LimitDecision{Allowed: true, Dimension: models.DimensionHouses, Limit: 2, Current: 1}, nil).Once()
	u.On("Check", mock.Anything, "u1", models.DimensionHouses, usage.Target{}, -2).
		Return(nil, fmt.Errorf("usage.Check: %w: delta must not be negative", models.ErrValidation)).Once()

	c := rawClient(t, listen(t, new(MockSubscriptions), u))
	ctx := context.Background()

	t.Run("omitted delta requests one object", func(t *testing.T) {
		resp, err := c.CheckLimit(ctx, &entitlementspb.CheckLimitRequest{UserId: "u1", Dimension: "houses"})
		require.NoError(t, err)
		assert.Equal(t, int32(1), resp.GetDecision().GetRequested())
	})

	t.Run("explicit zero is kept", func(t *testing.T) {
		resp, err := c.CheckLimit(ctx, &entitlementspb.CheckLimitRequest{
			UserId: "u1", Dimension: "houses", Delta: wrapperspb.Int32(0),
		})
		require.NoError(t, err)
		assert.Equal(t, int32(0), resp.GetDecision().GetRequested())
	})

	t.Run("negative delta is rejected", func(t *testing.T) {
		_, err := c.CheckLimit(ctx, &entitlementspb.CheckLimitRequest{
			UserId: "u1", Dimension: "houses", Delta: wrapperspb.Int32(-2),
		})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	u.AssertExpectations(t)
}

func TestInternalErrorsAreHidden(t *testing.T) {
	subs := new(MockSubscriptions)
	subs.On("GetCurrentSubscription", mock.Anything, "u1").Return(nil, errors.New("password=secret"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := server.New(logger, subs, new(MockUsage))

	_, err := srv.GetCurrentSubscription(context.Background(), &entitlementspb.GetCurrentSubscriptionRequest{UserId: "u1"})
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "internal error", st.Message())
}
