package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stylelens/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check and metrics endpoints
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	if cfg.RateLimit.PerIP > 0 {
		v1.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimit.PerIP, cfg.RateLimit.Burst)))
	}
	{
		v1.POST("/recommendations", handler.GetRecommendations)
		v1.GET("/trending", handler.Trending)
		v1.POST("/interactions", handler.TrackInteraction)

		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/:id/similar", handler.SimilarProducts)
		}

		users := v1.Group("/users/:id")
		{
			users.GET("/preferences", handler.GetPreferences)
			users.PUT("/preferences", handler.SavePreferences)
			users.GET("/recommendations", handler.UserRecommendations)
		}
	}

	return router
}
