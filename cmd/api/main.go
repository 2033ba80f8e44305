package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"memberreg/internal/config"
	"memberreg/internal/database"
	"memberreg/internal/middleware"
	"memberreg/internal/modules/files"
	"memberreg/internal/modules/picklist"
	"memberreg/internal/modules/registration"
	"memberreg/internal/modules/review"
	"memberreg/internal/modules/status"
	"memberreg/internal/notification"
	"memberreg/internal/pkg/logger"
	"memberreg/internal/repository"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	zl := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	registrationRepo := repository.NewRegistrationRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	fileRepo := repository.NewFileRepository(db)
	picklistRepo := repository.NewPicklistRepository(db)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			zl.Warn("redis unavailable, picklist cache disabled", zap.Error(err))
			redisClient = nil
		}
		cancel()
	}

	hub := notification.NewHub()
	defer hub.Close()
	notifier := notification.NewService(hub, zl)
	notificationHandler := notification.NewHandler(hub, zl)

	registrationService := registration.NewService(registrationRepo, notifier, zl)
	registrationHandler := registration.NewHandler(registrationService)

	reviewService := review.NewService(registrationRepo, memberRepo, fileRepo, notifier, hub, zl)
	reviewHandler := review.NewHandler(reviewService)

	statusService := status.NewService(registrationRepo, zl)
	statusHandler := status.NewHandler(statusService)

	picklistService := picklist.NewService(picklistRepo, redisClient, zl)
	picklistHandler := picklist.NewHandler(picklistService)
	picklistService.WarmUp(context.Background())

	filesHandler := files.NewHandler(fileRepo)

	// Initial board load; the admin console can re-trigger it any time.
	if err := reviewService.Refresh(context.Background()); err != nil {
		zl.Warn("initial pending-list load failed", zap.Error(err))
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// applicant-facing
		registrationHandler.RegisterRoutes(v1)
		statusHandler.RegisterRoutes(v1)
		picklistHandler.RegisterRoutes(v1)
		filesHandler.RegisterRoutes(v1)
		notificationHandler.RegisterRoutes(v1)

		// admin review board
		admin := v1.Group("/admin")
		{
			reviewHandler.RegisterRoutes(admin)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
