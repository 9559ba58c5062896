// Package entitlements собирает HTTP и gRPC серверы сервиса подписок.
package entitlements

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрирует swagger-документацию.
	_ "github.com/magabrotheeeer/home-inventory/docs"
	adminplans "github.com/magabrotheeeer/home-inventory/internal/http/handlers/admin/plans"
	adminsubs "github.com/magabrotheeeer/home-inventory/internal/http/handlers/admin/subscriptions"
	adminusers "github.com/magabrotheeeer/home-inventory/internal/http/handlers/admin/users"
	"github.com/magabrotheeeer/home-inventory/internal/http/handlers/health"
	planslist "github.com/magabrotheeeer/home-inventory/internal/http/handlers/plans/list"
	"github.com/magabrotheeeer/home-inventory/internal/http/handlers/subscription/cancel"
	sublist "github.com/magabrotheeeer/home-inventory/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/home-inventory/internal/http/handlers/subscription/status"
	"github.com/magabrotheeeer/home-inventory/internal/http/handlers/trial/start"
	"github.com/magabrotheeeer/home-inventory/internal/http/handlers/usage/check"
	"github.com/magabrotheeeer/home-inventory/internal/http/handlers/usage/summary"
	"github.com/magabrotheeeer/home-inventory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/home-inventory/internal/lib/metrics"
	"github.com/magabrotheeeer/home-inventory/internal/services/admin"
	"github.com/magabrotheeeer/home-inventory/internal/services/catalog"
	"github.com/magabrotheeeer/home-inventory/internal/services/lifecycle"
	"github.com/magabrotheeeer/home-inventory/internal/services/trial"
	"github.com/magabrotheeeer/home-inventory/internal/services/usage"
)

// Services сервисы, которые обслуживает HTTP API.
type Services struct {
	Catalog   *catalog.Service
	Trial     *trial.Service
	Lifecycle *lifecycle.Service
	Usage     *usage.Service
	Admin     *admin.Service
}

// RouteConfig параметры маршрутов.
type RouteConfig struct {
	Tokens        middlewarectx.TokenParser
	Health        health.Pinger
	Metrics       *metrics.Metrics
	RPS           float64
	Burst         int
	RetentionDays int
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, cfg RouteConfig) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware(cfg.Metrics),
	)

	r.Get("/health", health.New(logger, cfg.Health).ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(cfg.Tokens, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RPS, cfg.Burst))

		r.Get("/plans", planslist.New(logger, svc.Catalog).ServeHTTP)
		r.Post("/trial", start.New(logger, svc.Trial).ServeHTTP)
		r.Get("/subscription", status.New(logger, svc.Lifecycle).ServeHTTP)
		r.Get("/subscriptions", sublist.New(logger, svc.Lifecycle).ServeHTTP)
		r.Delete("/subscriptions/{id}", cancel.New(logger, svc.Lifecycle).ServeHTTP)
		r.Get("/usage", summary.New(logger, svc.Usage).ServeHTTP)
		r.Post("/usage/check", check.New(logger, svc.Usage).ServeHTTP)

		// Административные маршруты
		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewarectx.RequireAdmin(logger))

			plans := adminplans.New(logger, svc.Admin)
			r.Get("/plans", plans.List)
			r.Post("/plans", plans.Create)
			r.Put("/plans/{id}", plans.Update)

			users := adminusers.New(logger, svc.Admin)
			r.Get("/users", users.List)
			r.Post("/users", users.Create)
			r.Put("/users/{id}/role", users.SetRole)
			r.Post("/users/{id}/plan", users.AssignPlan)
			r.Post("/users/{id}/trial", users.GrantTrial)

			subs := adminsubs.New(logger, svc.Admin, cfg.RetentionDays)
			r.Delete("/subscriptions/{id}", subs.Cancel)
			r.Post("/maintenance/purge", subs.Purge)
		})
	})

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
