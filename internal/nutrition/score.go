package nutrition

import "math"

// ScoreUtilization measures how completely a recipe consumes the scanned
// pool: half the score comes from the fraction of pool ingredients the
// recipe touches, half from the fraction of available quantity it uses.
// A recipe cannot claim more of an ingredient than the user actually has,
// so the used quantity is clamped per ingredient.
//
// Returns a match score in [0,100] and the number of pool ingredients used.
// An empty pool, or a pool with no usable quantity, scores zero.
func ScoreUtilization(recipeIngredients []RecipeIngredient, pool []Ingredient) (matchScore, ingredientsUsed int) {
	if len(pool) == 0 {
		return 0, 0
	}

	var totalUsed, totalAvailable float64
	for i := range pool {
		available := safeQuantity(pool[i].Quantity)
		totalAvailable += available

		found := matchRecipeIngredient(pool[i].Name, recipeIngredients)
		if found == nil {
			continue
		}
		ingredientsUsed++
		totalUsed += math.Min(safeQuantity(found.Quantity), available)
	}

	if totalAvailable == 0 {
		return 0, ingredientsUsed
	}

	countRatio := float64(ingredientsUsed) / float64(len(pool))
	quantityRatio := totalUsed / totalAvailable
	matchScore = int(math.Round((countRatio*0.5 + quantityRatio*0.5) * 100))
	if matchScore < 0 {
		matchScore = 0
	} else if matchScore > 100 {
		matchScore = 100
	}
	return matchScore, ingredientsUsed
}

// ClampHealthScore forces an AI-reported health score into [1,10],
// substituting the neutral default when the value is absent or out of range.
func ClampHealthScore(score int) int {
	if score < 1 {
		if score == 0 {
			return 5
		}
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
