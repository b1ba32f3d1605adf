package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/nutrition"
	"github.com/mealsnap/backend/internal/service"
)

func createScan(t *testing.T, app *testApp, token string) models.Scan {
	t.Helper()
	app.ai.ingredients = []nutrition.Ingredient{
		{ID: "ing-1", Name: "Chicken Breast", Quantity: 400, Unit: "g",
			MacrosPer100g: &nutrition.MacrosPer100g{Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6}},
		{ID: "ing-2", Name: "Rice", Quantity: 300, Unit: "g",
			MacrosPer100g: &nutrition.MacrosPer100g{Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3}},
	}

	w := app.request(t, http.MethodPost, "/api/v1/scans", token, gin.H{
		"image_url": "https://example.com/fridge.jpg",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var scan models.Scan
	decodeBody(t, w, &scan)
	return scan
}

func TestGenerateRecipesEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := app.registerUser(t, "chef@example.com")
	scan := createScan(t, app, token)

	app.ai.recipes = []service.CandidateRecipe{
		{
			Name:        "Chicken and Rice",
			Description: "Simple and filling.",
			Ingredients: []nutrition.RecipeIngredient{
				{Name: "Chicken Breast", Quantity: 400, Unit: "g"},
				{Name: "Rice", Quantity: 300, Unit: "g"},
			},
			Steps:    []string{"Cook", "Serve"},
			PrepTime: 10, CookTime: 20, Servings: 2, HealthScore: 8,
		},
		{
			Name:        "Plain Rice",
			Ingredients: []nutrition.RecipeIngredient{{Name: "Rice", Quantity: 150, Unit: "g"}},
			Steps:       []string{"Boil"},
			PrepTime:    2, CookTime: 12, Servings: 1, HealthScore: 5,
		},
	}

	t.Run("generates ranked recipes", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/scans/"+scan.ID.String()+"/recipes", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Recipes []nutrition.Recipe `json:"recipes"`
		}
		decodeBody(t, w, &resp)
		require.Len(t, resp.Recipes, 2)
		assert.Equal(t, "Chicken and Rice", resp.Recipes[0].Name)
		assert.Equal(t, 100, resp.Recipes[0].MatchScore)
		assert.GreaterOrEqual(t, resp.Recipes[0].MatchScore, resp.Recipes[1].MatchScore)
	})

	t.Run("unknown scan is not found", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/scans/11111111-2222-3333-4444-555555555555/recipes", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty pool is a bad request", func(t *testing.T) {
		w := app.request(t, http.MethodPut, "/api/v1/scans/"+scan.ID.String()+"/ingredients", token, gin.H{
			"ingredients": []gin.H{},
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = app.request(t, http.MethodPost, "/api/v1/scans/"+scan.ID.String()+"/recipes", token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("provider garbage is a bad gateway", func(t *testing.T) {
		restored := createScan(t, app, token)
		app.ai.err = service.ErrBadAIResponse
		defer func() { app.ai.err = nil }()

		w := app.request(t, http.MethodPost, "/api/v1/scans/"+restored.ID.String()+"/recipes", token, nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestSearchRecipesEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := app.registerUser(t, "searcher@example.com")
	scan := createScan(t, app, token)

	app.ai.recipes = []service.CandidateRecipe{
		{Name: "Chicken Stir Fry", Ingredients: []nutrition.RecipeIngredient{{Name: "Chicken Breast", Quantity: 200, Unit: "g"}}},
	}
	w := app.request(t, http.MethodPost, "/api/v1/scans/"+scan.ID.String()+"/recipes", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.request(t, http.MethodGet, "/api/v1/recipes/search?q=chicken", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipes []models.Recipe `json:"recipes"`
	}
	decodeBody(t, w, &resp)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Chicken Stir Fry", resp.Recipes[0].Name)
}
