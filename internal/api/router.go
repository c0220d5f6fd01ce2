package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/zorgnet/care-access/internal/api/handler"
	"github.com/zorgnet/care-access/internal/api/middleware"
	"github.com/zorgnet/care-access/internal/core/service"
	"github.com/zorgnet/care-access/internal/infrastructure/config"
	"github.com/zorgnet/care-access/internal/infrastructure/db/sqlite"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("care_access"))

	// --- Dependencies ---
	repo := sqlite.NewDirectoryRepository(db)
	identityService := service.NewIdentityService(repo, cfg.JWTSecret, 8*time.Hour, log)
	policyService := service.NewPolicyService(repo, log)
	orgService := service.NewOrgService(repo, log)

	clientHandler := handler.NewClientHandler(identityService, policyService)
	userHandler := handler.NewUserHandler(identityService, orgService)
	orgHandler := handler.NewOrgHandler(orgService)
	demoHandler := handler.NewDemoHandler(identityService, policyService, orgService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Authenticated API (real-identity path) ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/me", userHandler.Me)
	v1.GET("/clients", clientHandler.List)
	v1.GET("/colleagues", userHandler.Colleagues)
	v1.GET("/access-policy", clientHandler.AccessPolicy)
	v1.GET("/organization", orgHandler.Tree)

	// --- Demo routes (name-based identity, fenced off in production) ---
	demo := e.Group("/demo", middleware.DemoGate(cfg.DemoMode))
	demo.POST("/token", demoHandler.Token)
	demo.GET("/dashboard/:name", demoHandler.Dashboard)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the store reachable?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
