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
	"github.com/mealsnap/backend/internal/types"
)

type ScanHandler struct {
	scanService *service.ScanService
	authService middleware.TokenValidator
	scanQuota   *middleware.Quota
}

func NewScanHandler(scanService *service.ScanService, authService middleware.TokenValidator, scanQuota *middleware.Quota) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		authService: authService,
		scanQuota:   scanQuota,
	}
}

func (h *ScanHandler) RegisterRoutes(router *gin.RouterGroup) {
	scans := router.Group("/scans")
	scans.Use(middleware.AuthMiddleware(h.authService))
	{
		scans.POST("", h.scanQuota.Middleware(), h.CreateScan)
		scans.GET("", h.ListScans)
		scans.GET("/:id", h.GetScan)
		scans.PUT("/:id/ingredients", h.UpdateIngredients)
		scans.DELETE("/:id", h.DeleteScan)
	}

	ingredients := router.Group("/ingredients")
	ingredients.Use(middleware.AuthMiddleware(h.authService))
	{
		ingredients.POST("/suggestions", h.SuggestIngredients)
	}
}

func (h *ScanHandler) CreateScan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	scan, err := h.scanService.CreateScan(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAIUnavailable), errors.Is(err, service.ErrBadAIResponse):
			c.JSON(http.StatusBadGateway, gin.H{"error": "image analysis failed, please try again"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create scan"})
		}
		return
	}

	c.JSON(http.StatusCreated, scan)
}

func (h *ScanHandler) ListScans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	scans, err := h.scanService.ListScans(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list scans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"scans": scans})
}

func (h *ScanHandler) GetScan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scan id"})
		return
	}

	scan, err := h.scanService.GetScan(c.Request.Context(), userID, scanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get scan"})
		return
	}

	c.JSON(http.StatusOK, scan)
}

func (h *ScanHandler) UpdateIngredients(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scan id"})
		return
	}

	var req types.UpdateIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	scan, err := h.scanService.UpdateIngredients(c.Request.Context(), userID, scanID, req.Ingredients)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ingredients"})
		return
	}

	c.JSON(http.StatusOK, scan)
}

func (h *ScanHandler) DeleteScan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	scanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scan id"})
		return
	}

	if err := h.scanService.DeleteScan(c.Request.Context(), userID, scanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete scan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "scan deleted"})
}

func (h *ScanHandler) SuggestIngredients(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.SuggestIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	suggestions, err := h.scanService.SuggestIngredients(c.Request.Context(), userID, req.Ingredients)
	if err != nil {
		if errors.Is(err, service.ErrAIUnavailable) || errors.Is(err, service.ErrBadAIResponse) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "suggestions unavailable, please try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to suggest ingredients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
