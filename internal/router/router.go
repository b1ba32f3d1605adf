package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mealsnap/backend/internal/api"
)

// Handler registers its routes on an API route group.
type Handler interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// setupCORS allows the mobile app's dev origins and the standard headers.
func setupCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8081", "http://localhost:19006"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// New builds the gin engine with all API routes mounted under /api/v1.
func New(
	authHandler *api.AuthHandler,
	profileHandler *api.ProfileHandler,
	scanHandler *api.ScanHandler,
	recipeHandler *api.RecipeHandler,
	trackerHandler *api.TrackerHandler,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(setupCORS())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	for _, h := range []Handler{authHandler, profileHandler, scanHandler, recipeHandler, trackerHandler} {
		h.RegisterRoutes(v1)
	}

	return engine
}
