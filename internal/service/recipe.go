package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/nutrition"
)

// RecipeGenerator is the slice of the AI client the orchestrator needs.
type RecipeGenerator interface {
	GenerateRecipes(ctx context.Context, ingredientList string) ([]CandidateRecipe, error)
}

// RecipeService turns a scan's ingredient pool into ranked, classified
// recipes. All scoring is local; only the candidate generation itself goes
// to the AI provider.
type RecipeService struct {
	db     *gorm.DB
	ai     RecipeGenerator
	logger *zap.Logger
}

func NewRecipeService(db *gorm.DB, ai RecipeGenerator, logger *zap.Logger) *RecipeService {
	return &RecipeService{db: db, ai: ai, logger: logger}
}

// Stock photos rotated across generated recipes until real image generation
// lands. TODO: replace with generated images once the image pipeline exists.
var foodImages = []string{
	"https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=800",
	"https://images.unsplash.com/photo-1567620905732-2d1ec7ab7445?w=800",
	"https://images.unsplash.com/photo-1555939594-58d7cb561ad1?w=800",
	"https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?w=800",
	"https://images.unsplash.com/photo-1540189549336-e6e99c3679fe?w=800",
}

var defaultSteps = []string{"Combine ingredients", "Mix well", "Serve"}

// GenerateRecipes runs the full pipeline for one scan: render the pool,
// fetch candidates, score and classify each one, rank, then persist the
// results both on the scan and as searchable recipe rows.
func (s *RecipeService) GenerateRecipes(ctx context.Context, userID, scanID uuid.UUID) ([]nutrition.Recipe, error) {
	var scan models.Scan
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", scanID, userID).
		First(&scan).Error; err != nil {
		return nil, err
	}

	pool := []nutrition.Ingredient(scan.Ingredients)
	if len(pool) == 0 {
		return nil, ErrNoIngredients
	}

	candidates, err := s.ai.GenerateRecipes(ctx, renderIngredientList(pool))
	if err != nil {
		return nil, err
	}

	recipes := make([]nutrition.Recipe, 0, len(candidates))
	for i, candidate := range candidates {
		recipes = append(recipes, s.buildRecipe(candidate, pool, i))
	}

	// Stable so equal scores keep the model's original order.
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].MatchScore > recipes[j].MatchScore
	})

	if err := s.persist(ctx, &scan, recipes); err != nil {
		return nil, err
	}

	s.logger.Info("generated recipes",
		zap.String("scan_id", scanID.String()),
		zap.Int("pool_size", len(pool)),
		zap.Int("recipes", len(recipes)),
	)

	return recipes, nil
}

// buildRecipe scores and classifies one candidate against the scan pool and
// fills the defaults the model tends to omit.
func (s *RecipeService) buildRecipe(candidate CandidateRecipe, pool []nutrition.Ingredient, index int) nutrition.Recipe {
	macros := nutrition.AggregateMacros(candidate.Ingredients, pool)
	matchScore, used := nutrition.ScoreUtilization(candidate.Ingredients, pool)
	mealTiming, tags := nutrition.Classify(macros)

	steps := candidate.Steps
	if len(steps) == 0 {
		steps = defaultSteps
	}
	prepTime := candidate.PrepTime
	if prepTime <= 0 {
		prepTime = 10
	}
	cookTime := candidate.CookTime
	if cookTime <= 0 {
		cookTime = 5
	}
	servings := candidate.Servings
	if servings <= 0 {
		servings = 1
	}
	name := candidate.Name
	if name == "" {
		name = fmt.Sprintf("Recipe %d", index+1)
	}

	return nutrition.Recipe{
		ID:               uuid.NewString(),
		Name:             name,
		Description:      candidate.Description,
		Ingredients:      candidate.Ingredients,
		Steps:            steps,
		Macros:           macros,
		PrepTime:         prepTime,
		CookTime:         cookTime,
		Servings:         servings,
		MatchScore:       matchScore,
		IngredientsUsed:  used,
		TotalIngredients: len(pool),
		MealTiming:       mealTiming,
		Tags:             tags,
		HealthScore:      nutrition.ClampHealthScore(candidate.HealthScore),
		ImageURL:         foodImages[index%len(foodImages)],
	}
}

// persist stores the ranked set on the scan and mirrors each recipe into
// the recipes table so search can find it later. Generation overwrites any
// previous results for the scan.
func (s *RecipeService) persist(ctx context.Context, scan *models.Scan, recipes []nutrition.Recipe) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scan.Recipes = models.RecipeList(recipes)
		if err := tx.Save(scan).Error; err != nil {
			return fmt.Errorf("failed to save scan recipes: %w", err)
		}

		if err := tx.Where("scan_id = ?", scan.ID).Delete(&models.Recipe{}).Error; err != nil {
			return fmt.Errorf("failed to clear previous recipes: %w", err)
		}

		for _, r := range recipes {
			row := models.Recipe{
				Name:        r.Name,
				Description: r.Description,
				ImageURL:    r.ImageURL,
				Ingredients: models.RecipeIngredientList(r.Ingredients),
				Steps:       models.JSONBStringArray(r.Steps),
				Tags:        models.JSONBStringArray(r.Tags),
				MealTiming:  r.MealTiming,
				Calories:    r.Macros.Calories,
				Protein:     r.Macros.Protein,
				Carbs:       r.Macros.Carbs,
				Fat:         r.Macros.Fat,
				PrepTime:    r.PrepTime,
				CookTime:    r.CookTime,
				Servings:    r.Servings,
				HealthScore: r.HealthScore,
				MatchScore:  r.MatchScore,
				Embedding:   GenerateEmbedding(r.Name + " " + r.Description),
				UserID:      scan.UserID,
				ScanID:      scan.ID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save recipe %q: %w", r.Name, err)
			}
		}
		return nil
	})
}

// renderIngredientList formats the pool the way the generation prompt
// expects, e.g. "500g Chicken Breast, 2pcs Eggs".
func renderIngredientList(pool []nutrition.Ingredient) string {
	parts := make([]string, 0, len(pool))
	for _, ing := range pool {
		parts = append(parts, fmt.Sprintf("%s%s %s", formatQuantity(ing.Quantity), ing.Unit, ing.Name))
	}
	return strings.Join(parts, ", ")
}

// formatQuantity drops the trailing ".0" on whole quantities.
func formatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%g", q)
}

// SearchRecipes ranks persisted recipes against a free-text query. On
// postgres it orders by embedding distance; elsewhere it falls back to a
// LIKE match so tests can run on sqlite.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string, limit int) ([]models.Recipe, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	db := s.db.WithContext(ctx).Model(&models.Recipe{})
	if query != "" {
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(query)
			db = db.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		} else {
			like := "%" + strings.ToLower(query) + "%"
			db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
		}
	} else {
		db = db.Order("created_at DESC")
	}

	var recipes []models.Recipe
	if err := db.Limit(limit).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return recipes, nil
}
