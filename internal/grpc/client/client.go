// Package client клиент gRPC сервиса подписок для приложения учета вещей.
// Коды gRPC переводятся обратно в ошибки models, поэтому вызывающий код
// проверяет их через errors.Is.
package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	entitlementspb "github.com/magabrotheeeer/home-inventory/internal/grpc/gen"
	"github.com/magabrotheeeer/home-inventory/internal/models"
	"github.com/magabrotheeeer/home-inventory/internal/services/usage"
)

// Client обертка над entitlementspb.EntitlementsClient.
type Client struct {
	conn   *grpc.ClientConn
	client entitlementspb.EntitlementsClient
}

// New подключается к addr. Дополнительные опции нужны для тестов (bufconn).
func New(addr string, opts ...grpc.DialOption) (*Client, error) {
	const op = "grpc.client.New"

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Client{conn: conn, client: entitlementspb.NewEntitlementsClient(conn)}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// CurrentSubscription возвращает открытую подписку или nil.
func (c *Client) CurrentSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	const op = "grpc.client.CurrentSubscription"
	resp, err := c.client.GetCurrentSubscription(ctx, &entitlementspb.GetCurrentSubscriptionRequest{UserId: userID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, fromStatus(err))
	}
	return subscriptionFromProto(resp.GetSubscription()), nil
}

func (c *Client) Usage(ctx context.Context, userID string) (*models.Usage, error) {
	const op = "grpc.client.Usage"
	resp, err := c.client.ComputeUsage(ctx, &entitlementspb.ComputeUsageRequest{UserId: userID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, fromStatus(err))
	}
	return usageFromProto(resp), nil
}

// CheckLimit спрашивает, можно ли добавить delta объектов измерения d.
func (c *Client) CheckLimit(ctx context.Context, userID string, d models.Dimension, target usage.Target, delta int) (*models.LimitDecision, error) {
	const op = "grpc.client.CheckLimit"
	resp, err := c.client.CheckLimit(ctx, &entitlementspb.CheckLimitRequest{
		UserId:    userID,
		Dimension: string(d),
		HouseId:   target.HouseID,
		RoomId:    target.RoomID,
		Delta:     wrapperspb.Int32(int32(delta)),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, fromStatus(err))
	}
	return decisionFromProto(resp.GetDecision()), nil
}

func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	var sentinel error
	switch st.Code() {
	case codes.NotFound:
		sentinel = models.ErrNotFound
	case codes.InvalidArgument:
		sentinel = models.ErrValidation
	case codes.AlreadyExists:
		sentinel = models.ErrConflict
	case codes.FailedPrecondition:
		sentinel = models.ErrTrialAlreadyUsed
	case codes.PermissionDenied:
		sentinel = models.ErrForbidden
	case codes.Unavailable:
		sentinel = models.ErrStorage
	default:
		return err
	}
	return fmt.Errorf("%w: %s", sentinel, st.Message())
}
