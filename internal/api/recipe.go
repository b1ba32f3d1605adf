package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealsnap/backend/internal/middleware"
	"github.com/mealsnap/backend/internal/service"
)

type RecipeHandler struct {
	recipeService   *service.RecipeService
	authService     middleware.TokenValidator
	generationQuota *middleware.Quota
}

func NewRecipeHandler(recipeService *service.RecipeService, authService middleware.TokenValidator, generationQuota *middleware.Quota) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		authService:     authService,
		generationQuota: generationQuota,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	scans := router.Group("/scans")
	scans.Use(middleware.AuthMiddleware(h.authService))
	{
		scans.POST("/:id/recipes", h.generationQuota.Middleware(), h.GenerateRecipes)
	}

	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.authService))
	{
		recipes.GET("/search", h.SearchRecipes)
	}
}

func (h *RecipeHandler) GenerateRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scan id"})
		return
	}

	recipes, err := h.recipeService.GenerateRecipes(c.Request.Context(), userID, scanID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
		case errors.Is(err, service.ErrNoIngredients):
			c.JSON(http.StatusBadRequest, gin.H{"error": "scan has no ingredients, add some first"})
		case errors.Is(err, service.ErrAIUnavailable), errors.Is(err, service.ErrBadAIResponse):
			c.JSON(http.StatusBadGateway, gin.H{"error": "recipe generation failed, please try again"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate recipes"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	recipes, err := h.recipeService.SearchRecipes(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
