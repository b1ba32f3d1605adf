package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealsnap/backend/internal/middleware"
	"github.com/mealsnap/backend/internal/service"
	"github.com/mealsnap/backend/internal/types"
)

type TrackerHandler struct {
	trackerService      *service.TrackerService
	subscriptionService *service.SubscriptionService
	authService         middleware.TokenValidator
	scanQuota           *middleware.Quota
	generationQuota     *middleware.Quota
}

func NewTrackerHandler(
	trackerService *service.TrackerService,
	subscriptionService *service.SubscriptionService,
	authService middleware.TokenValidator,
	scanQuota *middleware.Quota,
	generationQuota *middleware.Quota,
) *TrackerHandler {
	return &TrackerHandler{
		trackerService:      trackerService,
		subscriptionService: subscriptionService,
		authService:         authService,
		scanQuota:           scanQuota,
		generationQuota:     generationQuota,
	}
}

func (h *TrackerHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	meals.Use(middleware.AuthMiddleware(h.authService))
	{
		meals.POST("", h.LogMeal)
		meals.GET("", h.ListMeals)
		meals.DELETE("/:id", h.DeleteMeal)
		meals.GET("/summary", h.Summary)
	}

	water := router.Group("/water")
	water.Use(middleware.AuthMiddleware(h.authService))
	{
		water.POST("", h.LogWater)
	}

	usage := router.Group("/usage")
	usage.Use(middleware.AuthMiddleware(h.authService))
	{
		usage.GET("", h.Usage)
	}
}

func (h *TrackerHandler) LogMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.trackerService.LogMeal(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log meal"})
		return
	}

	c.JSON(http.StatusCreated, meal)
}

func (h *TrackerHandler) ListMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	meals, err := h.trackerService.ListMeals(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *TrackerHandler) DeleteMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := h.trackerService.DeleteMeal(c.Request.Context(), userID, mealID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete meal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}

func (h *TrackerHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date := c.DefaultQuery("date", time.Now().UTC().Format("2006-01-02"))
	summary, err := h.trackerService.Summary(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *TrackerHandler) LogWater(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.LogWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intake, err := h.trackerService.LogWater(c.Request.Context(), userID, time.Now().UTC().Format("2006-01-02"), req.Glasses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log water"})
		return
	}

	c.JSON(http.StatusCreated, intake)
}

// Usage reports the free-plan quota consumption so the app can show "7 of
// 10 scans used" and an upgrade prompt.
func (h *TrackerHandler) Usage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	premium := h.subscriptionService.IsPremium(c.Request.Context(), userID)
	plan := "free"
	if premium {
		plan = "premium"
	}

	resp := gin.H{"plan": plan}

	if h.scanQuota != nil {
		used, reset, err := h.scanQuota.Used(c.Request.Context(), userID)
		if err == nil {
			resp["scans"] = gin.H{"used": used, "limit": h.scanQuota.Limit(), "resets_at": reset.Unix()}
		}
	}
	if h.generationQuota != nil {
		used, reset, err := h.generationQuota.Used(c.Request.Context(), userID)
		if err == nil {
			resp["generations"] = gin.H{"used": used, "limit": h.generationQuota.Limit(), "resets_at": reset.Unix()}
		}
	}

	c.JSON(http.StatusOK, resp)
}
