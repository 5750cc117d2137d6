package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/storekeep/pos-api/internal/application/service"
	"github.com/storekeep/pos-api/internal/config"
	"github.com/storekeep/pos-api/internal/infrastructure/database"
	"github.com/storekeep/pos-api/internal/infrastructure/repository"
	"github.com/storekeep/pos-api/internal/presentation/http/handler"
	"github.com/storekeep/pos-api/internal/presentation/http/routes"
	"github.com/storekeep/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	storeItemRepo := repository.NewStoreItemRepository(db)
	cardRepo := repository.NewLoyaltyCardRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	employeeService := service.NewEmployeeService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	storeItemService := service.NewStoreItemService(storeItemRepo, productRepo)
	cardService := service.NewLoyaltyCardService(cardRepo)
	receiptService := service.NewReceiptService(receiptRepo, storeItemRepo, cardRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Category:    handler.NewCategoryHandler(categoryService),
		Product:     handler.NewProductHandler(productService),
		StoreItem:   handler.NewStoreItemHandler(storeItemService),
		Employee:    handler.NewEmployeeHandler(employeeService),
		LoyaltyCard: handler.NewLoyaltyCardHandler(cardService),
		Receipt:     handler.NewReceiptHandler(receiptService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
