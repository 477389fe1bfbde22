package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ratioai/backend/internal/middleware"
	"github.com/ratioai/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "ratio.ai API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes registers all API routes. redisClient may be nil, which
// disables rate limiting.
func RegisterRoutes(router *gin.Engine, authService service.IAuthService, recipeService service.IRecipeService, redisClient *redis.Client) {
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	var processLimiter, saveLimiter *middleware.RateLimiter
	if redisClient != nil {
		processLimiter = middleware.NewProcessRateLimiter(redisClient)
		saveLimiter = middleware.NewSaveRateLimiter(redisClient)
	}

	authHandler := NewAuthHandler(authService)
	recipeHandler := NewRecipeHandlerWithRateLimit(recipeService, authService, processLimiter, saveLimiter)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
	}
}
