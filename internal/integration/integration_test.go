package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mealsnap/backend/internal/database"
	"github.com/mealsnap/backend/internal/middleware"
	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/nutrition"
	"github.com/mealsnap/backend/internal/service"
	"github.com/mealsnap/backend/internal/testhelpers"
)

type cannedGenerator struct {
	candidates []service.CandidateRecipe
}

func (g *cannedGenerator) GenerateRecipes(context.Context, string) ([]service.CandidateRecipe, error) {
	return g.candidates, nil
}

// Runs the recipe pipeline against real postgres with pgvector, covering
// JSONB round-trips and embedding-ordered search, which sqlite cannot.
func TestRecipePipelineOnPostgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	require.NoError(t, db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\";").Error)
	require.NoError(t, database.RunMigrations(db, "../../migrations"))

	user := models.User{Name: "Integration", Email: "it@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	scan := models.Scan{
		UserID: user.ID,
		Ingredients: models.IngredientList{
			{ID: "ing-1", Name: "Chicken Breast", Quantity: 400, Unit: "g",
				MacrosPer100g: &nutrition.MacrosPer100g{Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6}},
			{ID: "ing-2", Name: "Rice", Quantity: 300, Unit: "g",
				MacrosPer100g: &nutrition.MacrosPer100g{Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3}},
		},
		Recipes: models.RecipeList{},
	}
	require.NoError(t, db.Create(&scan).Error)

	gen := &cannedGenerator{candidates: []service.CandidateRecipe{
		{
			Name: "Chicken and Rice",
			Ingredients: []nutrition.RecipeIngredient{
				{Name: "Chicken Breast", Quantity: 400, Unit: "g"},
				{Name: "Rice", Quantity: 300, Unit: "g"},
			},
			Steps:    []string{"Cook", "Serve"},
			PrepTime: 10, CookTime: 20, Servings: 2, HealthScore: 8,
		},
		{
			Name:        "Fried Rice",
			Ingredients: []nutrition.RecipeIngredient{{Name: "Rice", Quantity: 200, Unit: "g"}},
			Steps:       []string{"Fry"},
			PrepTime:    5, CookTime: 10, Servings: 1, HealthScore: 6,
		},
	}}
	svc := service.NewRecipeService(db, gen, zap.NewNop())

	recipes, err := svc.GenerateRecipes(context.Background(), user.ID, scan.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Chicken and Rice", recipes[0].Name)
	assert.Equal(t, 100, recipes[0].MatchScore)

	// Scan JSONB round-trip keeps the full ranked set.
	var stored models.Scan
	require.NoError(t, db.First(&stored, "id = ?", scan.ID).Error)
	require.Len(t, stored.Recipes, 2)
	assert.Equal(t, recipes[0].Macros, stored.Recipes[0].Macros)

	// Vector search orders by embedding distance.
	found, err := svc.SearchRecipes(context.Background(), "chicken rice", 10)
	require.NoError(t, err)
	require.NotEmpty(t, found)
	assert.Equal(t, "Chicken and Rice", found[0].Name)
}

func TestQuotaOnRedis(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	userID := uuid.New()

	quota := middleware.NewQuota(client, nil, middleware.QuotaConfig{
		Window:    time.Hour,
		Limit:     3,
		KeyPrefix: "quota:test",
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		allowed, _, _, err := quota.Consume(ctx, userID)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, remaining, _, err := quota.Consume(ctx, userID)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	used, _, err := quota.Used(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 4, used)

	// Another user has an independent window.
	allowed, _, _, err = quota.Consume(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, allowed)
}
