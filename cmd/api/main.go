package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/mealsnap/backend/config"
	"github.com/mealsnap/backend/internal/api"
	"github.com/mealsnap/backend/internal/database"
	"github.com/mealsnap/backend/internal/logging"
	"github.com/mealsnap/backend/internal/middleware"
	"github.com/mealsnap/backend/internal/router"
	"github.com/mealsnap/backend/internal/server"
	"github.com/mealsnap/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(config.IsProduction())
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	aiService, err := service.NewAIService(cfg, logger)
	if err != nil {
		logger.Fatal("failed to init ai client", zap.Error(err))
	}

	var imageStore service.ImageStore
	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		logger.Warn("object storage unavailable, scan photos will not be persisted", zap.Error(err))
	} else {
		imageStore = service.NewS3ImageStore(s3Config)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	subscriptionService := service.NewSubscriptionService(db)
	scanService := service.NewScanService(db, aiService, imageStore, profileService, logger)
	recipeService := service.NewRecipeService(db, aiService, logger)
	trackerService := service.NewTrackerService(db)

	scanQuota := middleware.NewScanQuota(redisClient, subscriptionService)
	generationQuota := middleware.NewGenerationQuota(redisClient, subscriptionService)

	engine := router.New(
		api.NewAuthHandler(authService),
		api.NewProfileHandler(profileService, authService),
		api.NewScanHandler(scanService, authService, scanQuota),
		api.NewRecipeHandler(recipeService, authService, generationQuota),
		api.NewTrackerHandler(trackerService, subscriptionService, authService, scanQuota, generationQuota),
	)

	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort, logger)
	if err := srv.Run(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
