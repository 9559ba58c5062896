// Package server реализует gRPC сервис entitlements.v1.Entitlements.
//
// Server делегирует чтение подписки в lifecycle, а подсчет использования и проверку
// лимитов в usage. Доменные ошибки переводятся в коды gRPC.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	entitlementspb "github.com/magabrotheeeer/home-inventory/internal/grpc/gen"
	"github.com/magabrotheeeer/home-inventory/internal/lib/sl"
	"github.com/magabrotheeeer/home-inventory/internal/models"
	"github.com/magabrotheeeer/home-inventory/internal/services/usage"
)

// Subscriptions чтение текущей подписки.
type Subscriptions interface {
	GetCurrentSubscription(ctx context.Context, userID string) (*models.Subscription, error)
}

// Usage подсчет использования и проверка лимитов.
type Usage interface {
	ComputeUsage(ctx context.Context, userID string) (*models.Usage, error)
	Check(ctx context.Context, userID string, d models.Dimension, target usage.Target, delta int) (*models.LimitDecision, error)
}

// defaultDelta запрашивается, если клиент не передал delta.
const defaultDelta = 1

// Server gRPC сервер подписок.
type Server struct {
	entitlementspb.UnimplementedEntitlementsServer
	subs  Subscriptions
	usage Usage
	log   *slog.Logger
}

// New создает Server.
func New(log *slog.Logger, subs Subscriptions, usage Usage) *Server {
	return &Server{
		subs:  subs,
		usage: usage,
		log:   log,
	}
}

// GetCurrentSubscription возвращает открытую подписку пользователя.
func (s *Server) GetCurrentSubscription(ctx context.Context, req *entitlementspb.GetCurrentSubscriptionRequest) (*entitlementspb.GetCurrentSubscriptionResponse, error) {
	userID := req.GetUserId()
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}
	sub, err := s.subs.GetCurrentSubscription(ctx, userID)
	if err != nil {
		s.log.Error("GetCurrentSubscription failed", slog.String("user_id", userID), sl.Err(err))
		return nil, toStatus(err)
	}
	return &entitlementspb.GetCurrentSubscriptionResponse{Subscription: subscriptionToProto(sub)}, nil
}

// ComputeUsage возвращает снимок использования.
func (s *Server) ComputeUsage(ctx context.Context, req *entitlementspb.ComputeUsageRequest) (*entitlementspb.ComputeUsageResponse, error) {
	userID := req.GetUserId()
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}
	u, err := s.usage.ComputeUsage(ctx, userID)
	if err != nil {
		s.log.Error("ComputeUsage failed", slog.String("user_id", userID), sl.Err(err))
		return nil, toStatus(err)
	}
	return usageToProto(u), nil
}

// CheckLimit проверяет лимит действующего тарифа.
// Без delta проверяется добавление одного объекта, явный 0 передается как есть.
func (s *Server) CheckLimit(ctx context.Context, req *entitlementspb.CheckLimitRequest) (*entitlementspb.CheckLimitResponse, error) {
	userID := req.GetUserId()
	if userID == "" {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}
	delta := defaultDelta
	if req.GetDelta() != nil {
		delta = int(req.GetDelta().GetValue())
	}
	dec, err := s.usage.Check(ctx, userID, models.Dimension(req.GetDimension()),
		usage.Target{HouseID: req.GetHouseId(), RoomID: req.GetRoomId()}, delta)
	if err != nil {
		s.log.Error("CheckLimit failed", slog.String("user_id", userID), sl.Err(err))
		return nil, toStatus(err)
	}
	return &entitlementspb.CheckLimitResponse{Decision: decisionToProto(dec)}, nil
}

// toStatus переводит доменную ошибку в статус gRPC.
func toStatus(err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, models.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidPlan):
		code = codes.InvalidArgument
	case errors.Is(err, models.ErrConflict):
		code = codes.AlreadyExists
	case errors.Is(err, models.ErrTrialAlreadyUsed):
		code = codes.FailedPrecondition
	case errors.Is(err, models.ErrForbidden):
		code = codes.PermissionDenied
	case errors.Is(err, models.ErrStorage):
		code = codes.Unavailable
	default:
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}

// LoggingInterceptor пишет в лог метод, код ответа и длительность каждого вызова.
func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Info("grpc request",
			slog.String("method", info.FullMethod),
			slog.String("code", status.Code(err).String()),
			slog.Duration("elapsed", time.Since(start)),
		)
		return resp, err
	}
}
