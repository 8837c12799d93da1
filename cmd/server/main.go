package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/groceteria/groceteria-backend/config"
	"github.com/groceteria/groceteria-backend/internal/app/controller"
	"github.com/groceteria/groceteria-backend/internal/app/repository"
	"github.com/groceteria/groceteria-backend/internal/app/service"
	"github.com/groceteria/groceteria-backend/internal/db"
	"github.com/groceteria/groceteria-backend/internal/middleware"
	"github.com/groceteria/groceteria-backend/internal/router"
	"github.com/groceteria/groceteria-backend/internal/scheduler"
	"github.com/groceteria/groceteria-backend/internal/storage"
	"github.com/groceteria/groceteria-backend/pkg/logger"
	"github.com/groceteria/groceteria-backend/pkg/payment"
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

	logger.Info("Starting GROCETERIA Backend Server", map[string]interface{}{
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
	itemRepo := repository.NewItemRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	paymentRepo := repository.NewPaymentRepository(db.GetDB())

	// Initialize services
	userService := service.NewUserService(
		userRepo,
		cartRepo,
		orderRepo,
		paymentRepo,
		itemRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	itemService := service.NewItemService(itemRepo, userRepo)
	cartService := service.NewCartService(cartRepo, itemRepo, userRepo, db.GetDB())
	orderService := service.NewOrderService(orderRepo, userRepo, itemRepo)
	gateway := payment.NewSimulatedGateway(cfg.Payment.ProcessingDelay, cfg.Payment.AlwaysFail)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo, userRepo, gateway, db.GetDB())

	// Initialize S3 storage for item images
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	userController := controller.NewUserController(userService)
	itemController := controller.NewItemController(itemService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	paymentController := controller.NewPaymentController(paymentService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the daily order summary job
	summaryScheduler := scheduler.NewOrderSummaryScheduler(orderService)
	if err := summaryScheduler.Start(); err != nil {
		logger.Fatal("Failed to start order summary scheduler", err)
	}
	defer summaryScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		userController,
		itemController,
		cartController,
		orderController,
		paymentController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
