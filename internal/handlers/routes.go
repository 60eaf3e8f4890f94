package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"prompt-relay-api/internal/config"
	"prompt-relay-api/internal/middleware"
	"prompt-relay-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	GenerationService services.GenerationService
	UsageService      services.UsageService
	AuthService       *middleware.AuthService
	RateLimit         config.RateLimitConfig
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouterConfig) {
	generateHandler := NewGenerateHandler(cfg.GenerationService)
	usageHandler := NewUsageHandler(cfg.UsageService)

	// The generate endpoint accepts POST only; anything else (other than the
	// OPTIONS preflight, which the CORS middleware short-circuits) gets a 405
	// with an Allow header.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.Header("Allow", http.MethodPost)
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Método no permitido. Usa POST."})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Recurso no encontrado."})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "prompt-relay-api",
			"mode":    config.GetDeploymentMode(),
		})
	})

	// Public generation endpoint
	router.POST("/api/generate", generateHandler.Generate)

	// Admin reporting routes
	v1 := router.Group("/api/v1")
	usage := v1.Group("/usage")
	if cfg.AuthService != nil {
		usage.Use(middleware.Authentication(cfg.AuthService))
	}
	{
		usage.GET("/summary", usageHandler.GetUsageSummary)
		usage.GET("/recent", usageHandler.ListRecentRequests)
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.StructuredLogger())
	router.Use(middleware.ErrorHandler())

	if cfg.RateLimit.RequestsPerSecond > 0 {
		router.Use(middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}
}
