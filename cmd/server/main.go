package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ratehub/ratehub-backend/config"
	"github.com/ratehub/ratehub-backend/internal/app/controller"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/internal/app/service"
	"github.com/ratehub/ratehub-backend/internal/db"
	"github.com/ratehub/ratehub-backend/internal/middleware"
	"github.com/ratehub/ratehub-backend/internal/router"
	"github.com/ratehub/ratehub-backend/internal/scheduler"
	"github.com/ratehub/ratehub-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting RateHub Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	storeRepo := repository.NewStoreRepository(db.GetDB())
	ratingRepo := repository.NewRatingRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.UserTokenExpiry,
		cfg.JWT.AdminTokenExpiry,
		cfg.Auth.AdminSecretKey,
	)
	storeService := service.NewStoreService(db.GetDB(), storeRepo, userRepo, ratingRepo)
	ratingService := service.NewRatingService(db.GetDB(), ratingRepo)
	userService := service.NewUserService(db.GetDB(), userRepo, storeRepo, ratingRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	storeController := controller.NewStoreController(storeService, ratingService)
	ownerController := controller.NewOwnerController(storeService)
	userController := controller.NewUserController(userService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		storeController,
		ownerController,
		userController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start the cached-rating reconciliation scheduler
	ratingScheduler := scheduler.NewRatingScheduler(ratingRepo)
	if err := ratingScheduler.Start(); err != nil {
		logger.Fatal("Failed to start rating scheduler", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ratingScheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
