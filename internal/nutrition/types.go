// Package nutrition contains the pure computation behind recipe generation:
// ingredient matching, macro aggregation, utilization scoring, meal
// classification and the daily calorie goal formula. Everything in this
// package is deterministic and side-effect free.
package nutrition

// MacrosPer100g is the nutrition density basis reported by the vision
// analysis for a scanned product.
type MacrosPer100g struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Ingredient is a single scanned item with its estimated package quantity.
type Ingredient struct {
	ID            string         `json:"id,omitempty"`
	Name          string         `json:"name"`
	Quantity      float64        `json:"quantity"`
	Unit          string         `json:"unit"`
	MacrosPer100g *MacrosPer100g `json:"macrosPer100g,omitempty"`
}

// RecipeIngredient is an ingredient reference as emitted by the AI model.
// Its name is not guaranteed to match any scanned ingredient exactly.
type RecipeIngredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Macros holds absolute nutrition values for one recipe, rounded per field.
type Macros struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Recipe is a fully scored and classified generation result.
type Recipe struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	Steps            []string           `json:"steps"`
	Macros           Macros             `json:"macros"`
	PrepTime         int                `json:"prepTime"`
	CookTime         int                `json:"cookTime"`
	Servings         int                `json:"servings"`
	MatchScore       int                `json:"matchScore"`
	IngredientsUsed  int                `json:"ingredientsUsed"`
	TotalIngredients int                `json:"totalIngredients"`
	MealTiming       string             `json:"mealTiming"`
	Tags             []string           `json:"tags"`
	HealthScore      int                `json:"healthScore"`
	ImageURL         string             `json:"imageUrl,omitempty"`
}

// Meal timing categories derived from the macro calorie split.
const (
	MealTimingPreWorkout  = "pre-workout"
	MealTimingPostWorkout = "post-workout"
	MealTimingBreakfast   = "breakfast"
)
