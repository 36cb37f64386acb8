package main

import (
	"context"
	"log"
	"time"

	"github.com/incogni100x/jltstones/internal/config"
	"github.com/incogni100x/jltstones/internal/database"
	"github.com/incogni100x/jltstones/internal/handlers"
	"github.com/incogni100x/jltstones/internal/migrations"
	"github.com/incogni100x/jltstones/internal/redis"
	"github.com/incogni100x/jltstones/internal/repository"
	"github.com/incogni100x/jltstones/internal/services"
	"github.com/incogni100x/jltstones/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Ensure schema and default admin
	if err := migrations.RunMigrations(db, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis session store
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize object storage for order images
	storageClient, err := storage.Initialize(storage.Config{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		PublicURL: cfg.StoragePublicURL,
		UseSSL:    cfg.StorageUseSSL,
	})
	if err != nil {
		log.Fatal("Failed to connect to object storage:", err)
	}
	if err := storageClient.EnsureBucket(context.Background()); err != nil {
		log.Fatal("Failed to prepare image bucket:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	sessionTTL := time.Duration(cfg.SessionTimeout) * time.Second
	authService := services.NewAuthService(userRepo, redisClient, sessionTTL)
	orderService := services.NewOrderService(orderRepo)
	uploadService := services.NewUploadService(storageClient)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(orderService)
	authHandler := handlers.NewAuthHandler(authService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	// Setup routes
	router := handlers.NewRouter(authService, orderHandler, authHandler, uploadHandler)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
