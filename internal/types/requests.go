package types

import "github.com/mealsnap/backend/internal/nutrition"

// RegisterRequest is the sign-up payload including the onboarding profile.
type RegisterRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"required,min=8"`
	Gender         string   `json:"gender" binding:"required,oneof=male female other"`
	HeightCm       float64  `json:"height_cm" binding:"required,gt=0"`
	WeightKg       float64  `json:"weight_kg" binding:"required,gt=0"`
	BirthDate      string   `json:"birth_date" binding:"required"`
	ActivityLevel  string   `json:"activity_level"`
	FitnessGoal    string   `json:"fitness_goal" binding:"required,oneof=gym lose_weight gain_weight maintain_weight"`
	TargetWeightKg *float64 `json:"target_weight_kg"`
	TargetWeeks    *int     `json:"target_weeks"`
	CuisinePrefs   []string `json:"cuisine_preferences"`
	TastePrefs     []string `json:"taste_preferences"`
}

// LoginRequest is the credential payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields are left
// untouched; weight, goal or activity changes recompute the calorie goal.
type UpdateProfileRequest struct {
	Gender         *string  `json:"gender"`
	HeightCm       *float64 `json:"height_cm"`
	WeightKg       *float64 `json:"weight_kg"`
	BirthDate      *string  `json:"birth_date"`
	ActivityLevel  *string  `json:"activity_level"`
	FitnessGoal    *string  `json:"fitness_goal"`
	TargetWeightKg *float64 `json:"target_weight_kg"`
	TargetWeeks    *int     `json:"target_weeks"`
	CuisinePrefs   []string `json:"cuisine_preferences"`
	TastePrefs     []string `json:"taste_preferences"`
}

// CreateScanRequest submits a photo for ingredient analysis. Exactly one of
// ImageBase64 or ImageURL must be set.
type CreateScanRequest struct {
	ImageBase64 string `json:"image_base64"`
	ImageURL    string `json:"image_url"`
}

// UpdateIngredientsRequest replaces a scan's ingredient pool before
// generation (the user can correct the vision output).
type UpdateIngredientsRequest struct {
	Ingredients []nutrition.Ingredient `json:"ingredients" binding:"required"`
}

// SuggestIngredientsRequest asks for complementary ingredients.
type SuggestIngredientsRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1"`
}

// LogMealRequest records a consumed meal.
type LogMealRequest struct {
	RecipeID   string  `json:"recipe_id"`
	RecipeName string  `json:"recipe_name" binding:"required"`
	Calories   float64 `json:"calories" binding:"gte=0"`
	Protein    float64 `json:"protein" binding:"gte=0"`
	Carbs      float64 `json:"carbs" binding:"gte=0"`
	Fat        float64 `json:"fat" binding:"gte=0"`
	Servings   float64 `json:"servings"`
}

// LogWaterRequest adds glasses of water to today's tally.
type LogWaterRequest struct {
	Glasses int `json:"glasses" binding:"required,gt=0"`
}
