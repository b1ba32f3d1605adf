package nutrition

import "math"

// safeQuantity coerces a quantity coming from the AI model into something
// usable: NaN, infinite and negative values contribute nothing.
func safeQuantity(q float64) float64 {
	if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
		return 0
	}
	return q
}

// AggregateMacros computes absolute macros for a recipe by resolving each
// recipe ingredient against the scanned pool and scaling that ingredient's
// per-100g profile by the quantity the recipe calls for. Unmatched
// ingredients and pool entries without macro data contribute zero, so a
// recipe that seasons with untracked salt simply loses those calories.
// Each field is rounded to the nearest integer independently.
func AggregateMacros(recipeIngredients []RecipeIngredient, pool []Ingredient) Macros {
	var calories, protein, carbs, fat float64

	for _, ri := range recipeIngredients {
		matched := MatchIngredient(ri.Name, pool)
		if matched == nil || matched.MacrosPer100g == nil {
			continue
		}
		factor := safeQuantity(ri.Quantity) / 100
		calories += matched.MacrosPer100g.Calories * factor
		protein += matched.MacrosPer100g.Protein * factor
		carbs += matched.MacrosPer100g.Carbs * factor
		fat += matched.MacrosPer100g.Fat * factor
	}

	return Macros{
		Calories: roundNonNegative(calories),
		Protein:  roundNonNegative(protein),
		Carbs:    roundNonNegative(carbs),
		Fat:      roundNonNegative(fat),
	}
}

func roundNonNegative(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Round(v))
}
