package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ratioai/backend/config"
	"github.com/ratioai/backend/internal/api"
	"github.com/ratioai/backend/internal/middleware"
	"github.com/ratioai/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	cfg *config.Config,
	authService service.IAuthService,
	recipeService service.IRecipeService,
	redisClient *redis.Client,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	api.RegisterRoutes(router, authService, recipeService, redisClient)

	return router
}
