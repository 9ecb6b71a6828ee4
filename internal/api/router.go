package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/westem/event-registration/docs"
	"github.com/westem/event-registration/internal/api/handler"
	"github.com/westem/event-registration/internal/api/middleware"
	"github.com/westem/event-registration/internal/core/domain"
	"github.com/westem/event-registration/internal/core/service"
	"github.com/westem/event-registration/internal/infrastructure/config"
	"github.com/westem/event-registration/internal/infrastructure/db/postgres"
	redisdb "github.com/westem/event-registration/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("event_registration"))

	// --- Dependencies ---
	denylist := redisdb.NewTokenDenylist(rdb)

	authRepo := postgres.NewAuthRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	registrationRepo := postgres.NewRegistrationRepository(pool)

	authService := service.NewAuthService(authRepo, denylist, cfg.JWTSecret, cfg.TokenTTL, log)
	eventService := service.NewEventService(eventRepo, registrationRepo, log)
	registrationService := service.NewRegistrationService(registrationRepo, eventRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	eventHandler := handler.NewEventHandler(eventService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)

	authMiddleware := middleware.Auth(cfg.JWTSecret, denylist)
	manageOnly := middleware.RBAC(domain.RoleTeacher, domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Event and registration routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/events", eventHandler.List)
	v1.POST("/events", eventHandler.Create, manageOnly)
	v1.GET("/events/mine", eventHandler.Mine, manageOnly)
	v1.DELETE("/events/:id", eventHandler.Delete, manageOnly)
	v1.GET("/events/:id/participants", registrationHandler.Participants, manageOnly)
	v1.POST("/events/:id/join", registrationHandler.Join)
	v1.DELETE("/events/:id/join", registrationHandler.Leave)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
