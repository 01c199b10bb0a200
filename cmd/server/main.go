package main

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"saasnotes/internal/caching"
	"saasnotes/internal/config"
	"saasnotes/internal/handlers"
	"saasnotes/internal/jobs/background"
	"saasnotes/internal/metrics"
	"saasnotes/internal/middleware"
	"saasnotes/internal/repositories"
	"saasnotes/internal/services"
	"saasnotes/pkg/database"
	"saasnotes/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.Init(&logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: "saasnotes",
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	pool, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Cache
	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	noteRepo := repositories.NewNoteRepo(pool)

	// Services
	authSvc := services.NewAuthService(userRepo, tenantRepo, cfg.JWT.Secret, cfg.JWT.TokenTTL)
	noteSvc := services.NewNoteService(noteRepo)
	tenantSvc := services.NewTenantService(tenantRepo, cacheSvc)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authSvc)
	httpMetrics := metrics.NewHTTPMetrics()

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, tenantSvc, cacheSvc)
	noteHandlers := handlers.NewNoteHandlers(noteSvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(tenantRepo, noteRepo, cacheSvc)
	if err != nil {
		log.Fatal("failed to create job scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(logger.RequestLogger(log))
	e.Use(httpMetrics.Middleware())

	// Public routes
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.POST("/login", authHandlers.Login)

	// Protected routes
	protected := e.Group("", authMiddleware.RequireAuth())
	protected.GET("/me", authHandlers.Me)
	protected.GET("/notes", noteHandlers.ListNotes)
	protected.POST("/notes", noteHandlers.CreateNote)
	protected.GET("/notes/:id", noteHandlers.GetNote)
	protected.PUT("/notes/:id", noteHandlers.UpdateNote)
	protected.DELETE("/notes/:id", noteHandlers.DeleteNote)

	// Admin routes
	protected.POST("/tenants/:slug/upgrade", tenantHandlers.UpgradeTenant, authMiddleware.RequireAdmin())

	log.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
	if err := e.Start(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
