package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/service"
)

func TestMealEndpoints(t *testing.T) {
	app := newTestApp(t)
	token := app.registerUser(t, "eater@example.com")

	var meal models.MealLog

	t.Run("log a meal", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/meals", token, gin.H{
			"recipe_name": "Chicken Bowl",
			"calories":    500,
			"protein":     40,
			"carbs":       50,
			"fat":         12,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		decodeBody(t, w, &meal)
		assert.Equal(t, 500.0, meal.Calories)
	})

	t.Run("list meals", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/meals", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Meals []models.MealLog `json:"meals"`
		}
		decodeBody(t, w, &resp)
		assert.Len(t, resp.Meals, 1)
	})

	t.Run("daily summary", func(t *testing.T) {
		today := time.Now().UTC().Format("2006-01-02")
		w := app.request(t, http.MethodGet, "/api/v1/meals/summary?date="+today, token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var summary service.DailySummary
		decodeBody(t, w, &summary)
		assert.Equal(t, 500, summary.CaloriesConsumed)
		assert.Positive(t, summary.CalorieGoal)
	})

	t.Run("delete meal", func(t *testing.T) {
		w := app.request(t, http.MethodDelete, "/api/v1/meals/"+meal.ID.String(), token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = app.request(t, http.MethodDelete, "/api/v1/meals/"+meal.ID.String(), token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/meals", token, gin.H{"calories": 100})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWaterEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := app.registerUser(t, "hydrated@example.com")

	w := app.request(t, http.MethodPost, "/api/v1/water", token, gin.H{"glasses": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var intake models.WaterIntake
	decodeBody(t, w, &intake)
	assert.Equal(t, 2, intake.Glasses)

	w = app.request(t, http.MethodPost, "/api/v1/water", token, gin.H{"glasses": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	decodeBody(t, w, &intake)
	assert.Equal(t, 3, intake.Glasses)

	t.Run("zero glasses is rejected", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/water", token, gin.H{"glasses": 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUsageEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := app.registerUser(t, "quota@example.com")

	w := app.request(t, http.MethodGet, "/api/v1/usage", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	decodeBody(t, w, &resp)
	assert.Equal(t, "free", resp["plan"])

	t.Run("premium plan is reported", func(t *testing.T) {
		require.NoError(t, app.db.Model(&models.Subscription{}).
			Where("plan_type = ?", "free").
			Updates(map[string]interface{}{"plan_type": "premium", "status": "active"}).Error)

		w := app.request(t, http.MethodGet, "/api/v1/usage", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeBody(t, w, &resp)
		assert.Equal(t, "premium", resp["plan"])
	})
}
