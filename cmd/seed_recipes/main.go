// Command seed_recipes loads a small demo catalog into the recipes table so
// the search endpoint has content before any user generates recipes.
package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mealsnap/backend/config"
	"github.com/mealsnap/backend/internal/models"
	"github.com/mealsnap/backend/internal/nutrition"
	"github.com/mealsnap/backend/internal/service"
)

type seedRecipe struct {
	name        string
	description string
	mealTiming  string
	tags        []string
	calories    int
	protein     int
	carbs       int
	fat         int
	ingredients []nutrition.RecipeIngredient
	steps       []string
}

var catalog = []seedRecipe{
	{
		name:        "Overnight Protein Oats",
		description: "Creamy oats soaked overnight with whey and berries.",
		mealTiming:  nutrition.MealTimingBreakfast,
		tags:        []string{"high-protein"},
		calories:    420, protein: 32, carbs: 52, fat: 9,
		ingredients: []nutrition.RecipeIngredient{
			{Name: "Oats", Quantity: 80, Unit: "g"},
			{Name: "Whey Protein", Quantity: 30, Unit: "g"},
			{Name: "Milk", Quantity: 200, Unit: "ml"},
			{Name: "Blueberries", Quantity: 50, Unit: "g"},
		},
		steps: []string{"Mix oats, whey and milk", "Refrigerate overnight", "Top with blueberries"},
	},
	{
		name:        "Banana Rice Cakes",
		description: "Fast-digesting carbs for before a session.",
		mealTiming:  nutrition.MealTimingPreWorkout,
		tags:        []string{"high-carb"},
		calories:    310, protein: 6, carbs: 68, fat: 3,
		ingredients: []nutrition.RecipeIngredient{
			{Name: "Rice Cakes", Quantity: 4, Unit: "pcs"},
			{Name: "Banana", Quantity: 1, Unit: "pcs"},
			{Name: "Honey", Quantity: 15, Unit: "g"},
		},
		steps: []string{"Slice banana over rice cakes", "Drizzle with honey"},
	},
	{
		name:        "Chicken and Rice Bowl",
		description: "The classic post-training plate.",
		mealTiming:  nutrition.MealTimingPostWorkout,
		tags:        []string{"high-protein", "bulking"},
		calories:    650, protein: 55, carbs: 70, fat: 12,
		ingredients: []nutrition.RecipeIngredient{
			{Name: "Chicken Breast", Quantity: 250, Unit: "g"},
			{Name: "Rice", Quantity: 200, Unit: "g"},
			{Name: "Broccoli", Quantity: 150, Unit: "g"},
		},
		steps: []string{"Grill the chicken", "Boil rice and steam broccoli", "Assemble the bowl"},
	},
	{
		name:        "Greek Yogurt Parfait",
		description: "Light layered yogurt with granola and honey.",
		mealTiming:  nutrition.MealTimingBreakfast,
		tags:        []string{"high-protein", "cutting"},
		calories:    330, protein: 24, carbs: 40, fat: 8,
		ingredients: []nutrition.RecipeIngredient{
			{Name: "Greek Yogurt", Quantity: 250, Unit: "g"},
			{Name: "Granola", Quantity: 40, Unit: "g"},
			{Name: "Honey", Quantity: 10, Unit: "g"},
		},
		steps: []string{"Layer yogurt and granola", "Finish with honey"},
	},
	{
		name:        "Salmon Sweet Potato Plate",
		description: "Omega-rich dinner with slow carbs.",
		mealTiming:  nutrition.MealTimingPostWorkout,
		tags:        []string{"high-protein", "high-fat"},
		calories:    580, protein: 42, carbs: 45, fat: 24,
		ingredients: []nutrition.RecipeIngredient{
			{Name: "Salmon Fillet", Quantity: 200, Unit: "g"},
			{Name: "Sweet Potato", Quantity: 250, Unit: "g"},
			{Name: "Olive Oil", Quantity: 10, Unit: "ml"},
		},
		steps: []string{"Roast the sweet potato", "Pan-sear the salmon", "Plate and season"},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	systemUser := uuid.Nil
	seeded := 0
	for _, r := range catalog {
		var existing models.Recipe
		if err := db.Where("name = ? AND user_id = ?", r.name, systemUser).First(&existing).Error; err == nil {
			continue
		}

		row := models.Recipe{
			Name:        r.name,
			Description: r.description,
			Ingredients: models.RecipeIngredientList(r.ingredients),
			Steps:       models.JSONBStringArray(r.steps),
			Tags:        models.JSONBStringArray(r.tags),
			MealTiming:  r.mealTiming,
			Calories:    r.calories,
			Protein:     r.protein,
			Carbs:       r.carbs,
			Fat:         r.fat,
			PrepTime:    10,
			CookTime:    15,
			Servings:    1,
			HealthScore: 8,
			MatchScore:  0,
			Embedding:   service.GenerateEmbedding(r.name + " " + r.description),
			UserID:      systemUser,
			ScanID:      uuid.Nil,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Fatalf("failed to seed %q: %v", r.name, err)
		}
		seeded++
	}

	log.Printf("seeded %d recipes", seeded)
}
