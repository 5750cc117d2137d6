package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storekeep/pos-api/internal/config"
	"github.com/storekeep/pos-api/internal/domain/enum"
	domainRepo "github.com/storekeep/pos-api/internal/domain/repository"
	"github.com/storekeep/pos-api/internal/presentation/http/handler"
	"github.com/storekeep/pos-api/internal/presentation/http/middleware"
	"github.com/storekeep/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Category    *handler.CategoryHandler
	Product     *handler.ProductHandler
	StoreItem   *handler.StoreItemHandler
	Employee    *handler.EmployeeHandler
	LoyaltyCard *handler.LoyaltyCardHandler
	Receipt     *handler.ReceiptHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/profile", h.Auth.Profile)

	registerCategoryRoutes(protected, h)
	registerProductRoutes(protected, h)
	registerStoreItemRoutes(protected, h)
	registerEmployeeRoutes(protected, h)
	registerLoyaltyCardRoutes(protected, h)
	registerReceiptRoutes(protected, h, deps)
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.POST("", middleware.RequireRole(enum.RoleManager), h.Category.Create)
		categories.PUT("/:id", middleware.RequireRole(enum.RoleManager), h.Category.Update)
		categories.DELETE("/:id", middleware.RequireRole(enum.RoleManager), h.Category.Delete)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", middleware.RequireRole(enum.RoleManager), h.Product.Create)
		products.PUT("/:id", middleware.RequireRole(enum.RoleManager), h.Product.Update)
		products.DELETE("/:id", middleware.RequireRole(enum.RoleManager), h.Product.Delete)
	}
}

func registerStoreItemRoutes(protected *gin.RouterGroup, h *Handlers) {
	items := protected.Group("/store-items")
	{
		items.GET("", h.StoreItem.List)
		items.GET("/:upc", h.StoreItem.Get)
		items.POST("", middleware.RequireRole(enum.RoleManager), h.StoreItem.Create)
		items.PUT("/:upc", middleware.RequireRole(enum.RoleManager), h.StoreItem.Update)
		items.DELETE("/:upc", middleware.RequireRole(enum.RoleManager), h.StoreItem.Delete)
	}
}

func registerEmployeeRoutes(protected *gin.RouterGroup, h *Handlers) {
	employees := protected.Group("/employees")
	employees.Use(middleware.RequireRole(enum.RoleManager))
	{
		employees.GET("", h.Employee.List)
		employees.POST("", h.Employee.Create)
		employees.GET("/:id", h.Employee.Get)
		employees.PUT("/:id", h.Employee.Update)
		employees.DELETE("/:id", h.Employee.Delete)
	}
}

func registerLoyaltyCardRoutes(protected *gin.RouterGroup, h *Handlers) {
	cards := protected.Group("/customers")
	{
		cards.GET("", h.LoyaltyCard.List)
		cards.GET("/:number", h.LoyaltyCard.Get)
		cards.POST("", middleware.RequireRole(enum.RoleManager), h.LoyaltyCard.Create)
		cards.PUT("/:number", middleware.RequireRole(enum.RoleManager, enum.RoleCashier), h.LoyaltyCard.Update)
		cards.DELETE("/:number", middleware.RequireRole(enum.RoleManager), h.LoyaltyCard.Delete)
	}
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	receipts := protected.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		// Sale creation is a cashier action and uses idempotency middleware
		// so retried checkouts replay the original receipt instead of
		// selling twice
		receipts.POST("", middleware.RequireRole(enum.RoleCashier),
			middleware.IdempotencyRequired(middleware.IdempotencyConfig{
				Repo: deps.IdempotencyRepo,
			}), h.Receipt.Create)
		receipts.GET("/analytics/total-sum", h.Receipt.TotalSales)
		receipts.GET("/analytics/quantity", middleware.RequireRole(enum.RoleManager), h.Receipt.QuantitySold)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.DELETE("/:id", middleware.RequireRole(enum.RoleManager), h.Receipt.Delete)
	}
}
