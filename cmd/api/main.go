package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/wrdrb-app/wrdrb-api/api/swagger"
	"github.com/wrdrb-app/wrdrb-api/internal/gcal"
	"github.com/wrdrb-app/wrdrb-api/internal/handler"
	"github.com/wrdrb-app/wrdrb-api/internal/middleware"
	"github.com/wrdrb-app/wrdrb-api/internal/repository"
	"github.com/wrdrb-app/wrdrb-api/internal/service"
	"github.com/wrdrb-app/wrdrb-api/internal/weather"
	"github.com/wrdrb-app/wrdrb-api/pkg/cache"
	"github.com/wrdrb-app/wrdrb-api/pkg/config"
	"github.com/wrdrb-app/wrdrb-api/pkg/database"
	"github.com/wrdrb-app/wrdrb-api/pkg/logger"
	corsmiddleware "github.com/wrdrb-app/wrdrb-api/pkg/middleware/cors"
	reqidmiddleware "github.com/wrdrb-app/wrdrb-api/pkg/middleware/requestid"
	"github.com/wrdrb-app/wrdrb-api/pkg/storage"
)

// @title wrdrb API
// @version 1.0.0
// @description Wardrobe management with a weather and calendar aware planner board
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}

	uploads, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}
	exportFiles, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	validate := validator.New()
	loc := time.Local

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewClothingItemRepository(db)
	outfitRepo := repository.NewOutfitRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Weather.CacheTTL, logr, redisClient != nil)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "wrdrb-api",
		Audience:           []string{"wrdrb-app"},
	})
	itemSvc := service.NewClothingItemService(itemRepo, validate, logr)
	outfitSvc := service.NewOutfitService(outfitRepo, itemRepo, validate, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, outfitRepo, itemRepo, validate, logr, loc)
	settingsSvc := service.NewSettingsService(settingsRepo, validate, logr, cfg.Weather.DefaultCity)

	weatherSvc := service.NewWeatherService(
		weather.NewClient(cfg.Weather, loc, logr),
		cacheSvc, metricsSvc, logr, loc,
		cfg.Weather.DefaultCity, cfg.Weather.CacheTTL,
	)
	calendarSvc := service.NewCalendarService(
		gcal.NewClient(logr, cfg.Calendar.MaxResults),
		settingsSvc, metricsSvc, logr,
		time.Duration(cfg.Calendar.WindowDays)*24*time.Hour,
	)
	plannerSvc := service.NewPlannerService(
		scheduleRepo, outfitRepo, itemRepo,
		weatherSvc, calendarSvc, settingsSvc,
		logr, loc,
	)
	exportSvc := service.NewExportService(itemRepo, exportFiles, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		Workers:   cfg.Exports.WorkerConcurrency,
		Retries:   cfg.Exports.WorkerRetries,
	}, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exportSvc.Start(ctx)
	defer exportSvc.Stop()

	scheduler := cron.New()
	if cfg.Weather.RefreshSchedule != "" {
		_, err := scheduler.AddFunc(cfg.Weather.RefreshSchedule, func() {
			refreshCtx, cancel := context.WithTimeout(ctx, cfg.Weather.RequestTimeout*2)
			defer cancel()
			if err := weatherSvc.RefreshCity(refreshCtx, cfg.Weather.DefaultCity); err != nil {
				logr.Warn("scheduled weather refresh failed", zap.Error(err))
			}
		})
		if err != nil {
			logr.Sugar().Fatalw("invalid weather refresh schedule", "schedule", cfg.Weather.RefreshSchedule, "error", err)
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := handler.NewAuthHandler(authSvc)
	itemHandler := handler.NewClothingItemHandler(itemSvc, uploads, cfg.Uploads)
	outfitHandler := handler.NewOutfitHandler(outfitSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	plannerHandler := handler.NewPlannerHandler(plannerSvc)
	weatherHandler := handler.NewWeatherHandler(weatherSvc, settingsSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	r.Static("/uploads", uploads.BaseDir())

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
	auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)

	// Download URLs carry their own signed token, so they skip JWT auth.
	api.GET("/exports/download", exportHandler.Download)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))

	protected.GET("/items", itemHandler.List)
	protected.POST("/items", itemHandler.Create)
	protected.POST("/items/upload", itemHandler.UploadImage)
	protected.GET("/items/:id", itemHandler.Get)
	protected.PUT("/items/:id", itemHandler.Update)
	protected.DELETE("/items/:id", itemHandler.Delete)

	protected.GET("/outfits", outfitHandler.List)
	protected.POST("/outfits", outfitHandler.Create)
	protected.GET("/outfits/:id", outfitHandler.Get)
	protected.PUT("/outfits/:id", outfitHandler.Update)
	protected.DELETE("/outfits/:id", outfitHandler.Delete)

	protected.GET("/schedules", scheduleHandler.List)
	protected.POST("/schedules", scheduleHandler.Create)
	protected.DELETE("/schedules/:id", scheduleHandler.Delete)

	protected.GET("/planner/board", plannerHandler.Board)

	protected.GET("/weather/current", weatherHandler.Current)
	protected.GET("/weather/forecast", weatherHandler.Forecast)

	protected.GET("/settings", settingsHandler.Get)
	protected.PUT("/settings", settingsHandler.Update)
	protected.POST("/settings/google", settingsHandler.ConnectCalendar)
	protected.DELETE("/settings/google", settingsHandler.DisconnectCalendar)

	protected.GET("/exports", exportHandler.List)
	protected.POST("/exports/closet", exportHandler.Create)
	protected.GET("/exports/:id", exportHandler.Get)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Errorw("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
