package entitlements

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"

	"github.com/magabrotheeeer/home-inventory/internal/app/infra"
	"github.com/magabrotheeeer/home-inventory/internal/cache"
	"github.com/magabrotheeeer/home-inventory/internal/config"
	entitlementspb "github.com/magabrotheeeer/home-inventory/internal/grpc/gen"
	grpcserver "github.com/magabrotheeeer/home-inventory/internal/grpc/server"
	"github.com/magabrotheeeer/home-inventory/internal/lib/clock"
	"github.com/magabrotheeeer/home-inventory/internal/lib/jwt"
	"github.com/magabrotheeeer/home-inventory/internal/lib/metrics"
	"github.com/magabrotheeeer/home-inventory/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/home-inventory/internal/lib/sl"
	"github.com/magabrotheeeer/home-inventory/internal/services/admin"
	"github.com/magabrotheeeer/home-inventory/internal/services/catalog"
	"github.com/magabrotheeeer/home-inventory/internal/services/lifecycle"
	"github.com/magabrotheeeer/home-inventory/internal/services/trial"
	"github.com/magabrotheeeer/home-inventory/internal/services/usage"
	"github.com/magabrotheeeer/home-inventory/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App HTTP и gRPC серверы сервиса подписок.
type App struct {
	server     *http.Server
	grpcServer *grpc.Server
	grpcAddr   string
	logger     *slog.Logger
	store      storage.Store
	cache      *cache.Cache
	events     *infra.Events
}

// NewServices собирает сервисы поверх хранилища.
func NewServices(log *slog.Logger, cfg *config.Config, store storage.Store, planCache catalog.Cache,
	clk clock.Clock, events rabbitmq.Publisher, m *metrics.Metrics) Services {
	cat := catalog.New(log, store, planCache, clk, cfg.PlanCacheTTL, m)
	tr := trial.New(log, store, clk, events, m, trial.Config{
		TrialDays: cfg.TrialDays,
		TrialPlan: cfg.TrialPlan,
	})
	lc := lifecycle.New(log, store, clk, events, m, lifecycle.Config{
		AssignPeriod: cfg.AssignPeriod,
	})
	us := usage.New(log, store, clk, m, usage.Config{
		FreePlan: cfg.FreePlan,
	})
	return Services{
		Catalog:   cat,
		Trial:     tr,
		Lifecycle: lc,
		Usage:     us,
		Admin:     admin.New(log, cat, tr, lc, store, clk),
	}
}

// New открывает ресурсы и собирает серверы.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := infra.OpenStore(cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	events, err := infra.OpenEvents(cfg.RabbitMQ, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	redisCache := infra.OpenCache(ctx, cfg.RedisConnection, logger)
	var planCache catalog.Cache
	if redisCache != nil {
		planCache = redisCache
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	svc := NewServices(logger, cfg, store, planCache, clock.Real{}, events.Publisher, m)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, svc, RouteConfig{
		Tokens:        jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL),
		Health:        store,
		Metrics:       m,
		RPS:           cfg.RateLimit.RPS,
		Burst:         cfg.RateLimit.Burst,
		RetentionDays: cfg.RetentionDays,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpcserver.LoggingInterceptor(logger)))
	entitlementspb.RegisterEntitlementsServer(grpcServer, grpcserver.New(logger, svc.Lifecycle, svc.Usage))

	return &App{
		server:     srv,
		grpcServer: grpcServer,
		grpcAddr:   cfg.AddressGRPC,
		logger:     logger,
		store:      store,
		cache:      redisCache,
		events:     events,
	}, nil
}

// Run запускает серверы и останавливает их после отмены ctx.
func (a *App) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", a.grpcAddr)
	if err != nil {
		a.close()
		return fmt.Errorf("listen grpc: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()
	go func() {
		a.logger.Info("gRPC server starting on", slog.String("address", a.grpcAddr))
		errCh <- a.grpcServer.Serve(lis)
	}()

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down servers gracefully")
	if err := a.server.Shutdown(timeoutCtx); err != nil && runErr == nil {
		runErr = err
	}
	a.grpcServer.GracefulStop()
	a.close()
	return runErr
}

func (a *App) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
	if err := a.events.Close(); err != nil {
		a.logger.Error("failed to close rabbitmq", sl.Err(err))
	}
	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
