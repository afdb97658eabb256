package router

import (
	"github.com/gin-gonic/gin"

	"github.com/greenmarket/fridgechef/internal/api"
	"github.com/greenmarket/fridgechef/internal/middleware"
)

// SetupRouter configures the application routes.
func SetupRouter(
	chatHandler *api.ChatHandler,
	recipeHandler *api.RecipeHandler,
	healthHandler *api.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS(allowedOrigins))

	healthHandler.RegisterRoutes(router)

	// API v1 routes
	v1 := router.Group("/api/v1")
	chatHandler.RegisterRoutes(v1)
	recipeHandler.RegisterRoutes(v1)

	return router
}
