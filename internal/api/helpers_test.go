package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealsnap/backend/internal/middleware"
	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/nutrition"
	"github.com/mealsnap/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAI satisfies both AI-facing service interfaces with canned answers.
type fakeAI struct {
	recipes     []service.CandidateRecipe
	ingredients []nutrition.Ingredient
	suggestions []nutrition.Ingredient
	err         error
}

func (f *fakeAI) GenerateRecipes(context.Context, string) ([]service.CandidateRecipe, error) {
	return f.recipes, f.err
}

func (f *fakeAI) AnalyzeImage(context.Context, string) ([]nutrition.Ingredient, error) {
	return f.ingredients, f.err
}

func (f *fakeAI) SuggestIngredients(context.Context, []string, service.SuggestionPreferences) ([]nutrition.Ingredient, error) {
	return f.suggestions, f.err
}

type testApp struct {
	db     *gorm.DB
	engine *gin.Engine
	ai     *fakeAI
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Subscription{},
		&models.Scan{},
		&models.Recipe{},
		&models.MealLog{},
		&models.WaterIntake{},
	))

	ai := &fakeAI{}
	log := zap.NewNop()

	authService := service.NewAuthService(db, "test-secret")
	profileService := service.NewProfileService(db)
	subscriptionService := service.NewSubscriptionService(db)
	scanService := service.NewScanService(db, ai, nil, profileService, log)
	recipeService := service.NewRecipeService(db, ai, log)
	trackerService := service.NewTrackerService(db)

	// No redis in unit tests; quotas fail open.
	scanQuota := middleware.NewScanQuota(nil, subscriptionService)
	generationQuota := middleware.NewGenerationQuota(nil, subscriptionService)

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewProfileHandler(profileService, authService).RegisterRoutes(v1)
	NewScanHandler(scanService, authService, scanQuota).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, authService, generationQuota).RegisterRoutes(v1)
	NewTrackerHandler(trackerService, subscriptionService, authService, scanQuota, generationQuota).RegisterRoutes(v1)

	return &testApp{db: db, engine: engine, ai: ai}
}

func (app *testApp) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	return w
}

// registerUser signs up a test user through the real endpoint and returns
// the session token.
func (app *testApp) registerUser(t *testing.T, email string) string {
	t.Helper()

	w := app.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":           "Test User",
		"email":          email,
		"password":       "password123",
		"gender":         "male",
		"height_cm":      180,
		"weight_kg":      80,
		"birth_date":     "1995-06-15",
		"activity_level": "moderately_active",
		"fitness_goal":   "maintain_weight",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
